package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zostay/go-fits"
	"github.com/zostay/go-fits/header/keyword"
)

var dumpCmd = &cobra.Command{
	Use:   "dump file...",
	Short: "Print the header keywords of one or more FITS files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  RunDump,
}

var (
	dumpHDU        int
	dumpCommentary bool
)

func init() {
	dumpCmd.Flags().IntVar(&dumpHDU, "hdu", 0,
		"which header to read, 0 being the primary")
	dumpCmd.Flags().BoolVar(&dumpCommentary, "commentary", false,
		"retain COMMENT and HISTORY cards")

	rootCmd.AddCommand(dumpCmd)
}

var (
	nameCol    = color.New(color.FgCyan).SprintFunc()
	stringCol  = color.New(color.FgGreen).SprintFunc()
	numberCol  = color.New(color.FgYellow).SprintFunc()
	boolCol    = color.New(color.FgMagenta).SprintFunc()
	invalidCol = color.New(color.FgRed).SprintFunc()
	commentCol = color.New(color.Faint).SprintFunc()
)

func RunDump(cmd *cobra.Command, args []string) error {
	opts := []fits.ReadOption{fits.WithHDU(dumpHDU)}
	if dumpCommentary {
		opts = append(opts, fits.WithCommentary())
	}

	for _, path := range args {
		if len(args) > 1 {
			fmt.Printf("==> %s <==\n", path)
		}

		h, err := fits.ReadHeader(path, opts...)
		if err != nil {
			return err
		}

		for _, k := range h.ListKeywords() {
			if k.Commentary() {
				fmt.Printf("%s %s\n", nameCol(fmt.Sprintf("%-8s", k.Name())),
					commentCol(k.Comment()))
				continue
			}

			value := k.Value().String()
			switch k.Value().Kind() {
			case keyword.String:
				value = stringCol(value)
			case keyword.Integer, keyword.Float:
				value = numberCol(value)
			case keyword.Bool:
				value = boolCol(value)
			case keyword.Invalid:
				value = invalidCol(string(k.Raw()))
			}

			line := fmt.Sprintf("%s = %s",
				nameCol(fmt.Sprintf("%-8s", k.Name())), value)
			if k.Comment() != "" {
				line += commentCol(" / " + k.Comment())
			}
			fmt.Println(line)
		}
	}

	return nil
}
