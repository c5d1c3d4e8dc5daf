// Package cmd implements the command-line interface for nowbar.
package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/nowbar-cli/nowbar/color"
	"github.com/nowbar-cli/nowbar/icon"
	"github.com/nowbar-cli/nowbar/session"
	"github.com/nowbar-cli/nowbar/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// errUnknownControl suggests the closest transport command for a typo.
func errUnknownControl(name string) error {
	closest := lo.MinBy(session.Controls(), func(a, b session.ControlKind) bool {
		return levenshtein.Distance(name, string(a)) < levenshtein.Distance(name, string(b))
	})
	msg := fmt.Sprintf(
		"unknown control %s, did you mean %s?",
		style.Fg(color.Red)(name),
		style.Fg(color.Yellow)(string(closest)),
	)

	return errors.New(msg)
}

func completionControls(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(session.Controls(), func(kind session.ControlKind, _ int) string {
		return string(kind)
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(controlCmd)

	controlCmd.Flags().StringP("source", "s", "", "The session source to control; prompted interactively when omitted")
}

// controlCmd dispatches a transport command to one media session.
var controlCmd = &cobra.Command{
	Use:               "control [command]",
	Short:             "Dispatch a transport command to a media session",
	Long:              `Send Play, Pause, TogglePlayPause, FastForward, Rewind, SkipNext or SkipPrevious to one session.`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionControls,
	Run: func(cmd *cobra.Command, args []string) {
		control, ok := session.ParseControl(args[0])
		if !ok {
			handleErr(errUnknownControl(args[0]))
		}

		e, err := connectEngine()
		handleErr(err)
		defer e.Close()

		handleErr(e.Bootstrap())

		source := lo.Must(cmd.Flags().GetString("source"))
		if source == "" {
			records := e.Records()
			if len(records) == 0 {
				handleErr(errors.New("no media sessions available"))
			}

			choices := lo.Map(records, func(record session.Record, _ int) string {
				if title := record.Title(); title != "" {
					return fmt.Sprintf("%s (%s)", record.Source, title)
				}
				return record.Source
			})

			var picked int
			prompt := survey.Select{
				Message: "Which session?",
				Options: choices,
			}
			handleErr(survey.AskOne(&prompt, &picked))
			source = records[picked].Source
		}

		if _, found := lo.Find(e.Records(), func(record session.Record) bool {
			return record.Source == source
		}); !found {
			handleErr(fmt.Errorf("no session for source %q", source))
		}

		handleErr(e.Control(source, control))
		fmt.Printf(
			"%s sent %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(string(control)),
			style.Fg(color.Yellow)(source),
		)
	},
}
