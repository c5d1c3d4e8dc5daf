// Package cmd implements the command-line interface for nowbar.
package cmd

import (
	"github.com/nowbar-cli/nowbar/mini"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(miniCmd)
}

// miniCmd launches the application as a compact single-line display.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch a compact single-line now playing display",
	Long:  `Render the most relevant media session as a single terminal line, refreshed in place.`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := connectEngine()
		handleErr(err)

		err = mini.Run(&mini.Options{Engine: e})
		if err != nil && err.Error() != "interrupt" {
			handleErr(err)
		}
	},
}
