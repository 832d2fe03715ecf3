package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-fits/cmd/fitshead/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
