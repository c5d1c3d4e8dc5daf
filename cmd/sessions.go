// Package cmd implements the command-line interface for nowbar.
package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/nowbar-cli/nowbar/filesystem"
	"github.com/nowbar-cli/nowbar/inline"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sessionsCmd)

	sessionsCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	sessionsCmd.Flags().StringP("query", "q", "", "Fuzzy-filter sessions by source, title or artist")
	sessionsCmd.Flags().StringP("pick", "p", "", "Narrow to a single session (first, last, exact, index)")
	sessionsCmd.Flags().StringP("value", "V", "", "The value paired with the pick criteria")
	sessionsCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	sessionsCmd.SetOut(os.Stdout)
}

// sessionsCmd enumerates the current media sessions in scriptable form.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Enumerate the current media sessions and exit",
	Long: `Connect to the configured provider, print its current sessions once and exit.

Pick criteria:
  first - first session in the list
  last - last session in the list
  exact - session whose source equals --value
  index - session at index --value (starting from 0)`,
	Run: func(cmd *cobra.Command, args []string) {
		e, err := connectEngine()
		handleErr(err)
		defer e.Close()

		handleErr(e.Bootstrap())

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			writer, err = filesystem.API().Create(output)
			handleErr(err)
		} else {
			writer = os.Stdout
		}

		pickFlag := lo.Must(cmd.Flags().GetString("pick"))
		picker := mo.None[inline.SessionPicker]()
		if pickFlag != "" {
			fn, err := inline.ParsePicker(pickFlag, lo.Must(cmd.Flags().GetString("value")))
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:    writer,
			Engine: e,
			Json:   lo.Must(cmd.Flags().GetBool("json")),
			Query:  lo.Must(cmd.Flags().GetString("query")),
			Picker: picker,
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsSchemaCmd)
}

// sessionsSchemaCmd generates the JSON schema for the structured output.
var sessionsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for the sessions JSON output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true

		schema := reflector.Reflect(&inline.Output{})
		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
