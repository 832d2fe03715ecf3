package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zostay/go-fits"
)

var scanCmd = &cobra.Command{
	Use:   "scan glob...",
	Short: "Scan many FITS files and summarize their headers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  RunScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

// expandGlobs expands each argument as a glob pattern. Arguments that match
// nothing are kept as-is so the read reports a sensible error for them.
func expandGlobs(args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

type scanResult struct {
	keywords int
	invalid  int
}

func RunScan(cmd *cobra.Command, args []string) error {
	paths, err := expandGlobs(args)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		results = make(map[string]scanResult, len(paths))
	)

	bar := progressbar.Default(int64(len(paths)))

	grp := new(errgroup.Group)
	for _, path := range paths {
		path := path
		grp.Go(func() error {
			defer func() { _ = bar.Add(1) }()

			h, err := fits.ReadHeader(path)
			if err != nil {
				return err
			}

			var r scanResult
			for _, k := range h.ListKeywords() {
				r.keywords++
				if !k.Valid() {
					r.invalid++
				}
			}

			mu.Lock()
			results[path] = r
			mu.Unlock()

			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return err
	}

	sorted := make([]string, 0, len(results))
	for path := range results {
		sorted = append(sorted, path)
	}
	sort.Strings(sorted)

	for _, path := range sorted {
		r := results[path]
		line := fmt.Sprintf("%s: %d keywords", path, r.keywords)
		if r.invalid > 0 {
			line += invalidCol(fmt.Sprintf(" (%d invalid)", r.invalid))
		}
		fmt.Println(line)
	}

	return nil
}
