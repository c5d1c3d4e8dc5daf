// Package cmd implements the command-line interface for nowbar.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/nowbar-cli/nowbar/color"
	"github.com/nowbar-cli/nowbar/history"
	"github.com/nowbar-cli/nowbar/icon"
	"github.com/nowbar-cli/nowbar/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolP("json", "j", false, "Format the listening log as a JSON object")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd displays the accumulated listening log.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the accumulated listening log",
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		tracks := lo.Values(saved)
		sort.Slice(tracks, func(i, j int) bool {
			return tracks[i].LastSeenAt > tracks[j].LastSeenAt
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(tracks))
			return
		}

		if len(tracks) == 0 {
			cmd.Println("Listening log is empty")
			return
		}

		for _, track := range tracks {
			cmd.Printf(
				"%s %s %s %s\n",
				icon.Get(icon.Note),
				style.Fg(color.Purple)(track.Title),
				style.Faint(track.Artist),
				style.Fg(color.Yellow)(fmt.Sprintf("x%d", track.PlayCount)),
			)
		}
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

// historyClearCmd wipes the listening log.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Permanently wipe the listening log",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(history.Clear())
		fmt.Printf("%s history cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
