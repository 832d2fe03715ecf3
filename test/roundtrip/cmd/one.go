package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-fits"
	"github.com/zostay/go-fits/header"
)

var oneCmd = &cobra.Command{
	Use:   "one file",
	Short: "Shows the diff of a single header round-trip",
	Args:  cobra.ExactArgs(1),
	Run:   RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

// RunOne reads a header, renders it, parses the rendering again, and diffs
// the two renderings. A stable round-trip produces identical bytes the
// second time through.
func RunOne(cmd *cobra.Command, args []string) {
	path := args[0]

	h, err := fits.ReadHeader(path, fits.WithCommentary())
	if err != nil {
		panic(err)
	}

	first := h.Bytes()

	h2, err := header.ParseCommentary(trimEnd(first))
	if err != nil {
		panic(err)
	}

	second := h2.Bytes()

	fmt.Printf("path = %s\n", path)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(first), string(second), false)

	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		fmt.Println("round-trip is stable")
		return
	}

	fmt.Println(dmp.DiffPrettyText(diffs))
	os.Exit(1)
}

// trimEnd removes the END card and block padding so the rendering can be fed
// back into the parser the way the scanner would deliver it.
func trimEnd(m []byte) []byte {
	for off := 0; off+header.CardSize <= len(m); off += header.CardSize {
		card := m[off : off+header.CardSize]
		if string(bytes.TrimRight(card, " ")) == "END" {
			return m[:off]
		}
	}
	return m
}
