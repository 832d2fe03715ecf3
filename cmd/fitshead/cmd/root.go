package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "fitshead",
	Short: "Read and inspect FITS file headers",
}

func Execute() error {
	return rootCmd.Execute()
}
