// Package cmd implements the command-line interface for nowbar.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/nowbar-cli/nowbar/artwork"
	"github.com/nowbar-cli/nowbar/color"
	"github.com/nowbar-cli/nowbar/constant"
	"github.com/nowbar-cli/nowbar/engine"
	"github.com/nowbar-cli/nowbar/history"
	"github.com/nowbar-cli/nowbar/icon"
	"github.com/nowbar-cli/nowbar/key"
	"github.com/nowbar-cli/nowbar/log"
	"github.com/nowbar-cli/nowbar/provider"
	"github.com/nowbar-cli/nowbar/store"
	"github.com/nowbar-cli/nowbar/style"
	"github.com/nowbar-cli/nowbar/timeline"
	"github.com/nowbar-cli/nowbar/tui"
	"github.com/nowbar-cli/nowbar/version"
	"github.com/nowbar-cli/nowbar/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("provider", "P", "", "Specify the session provider to connect to")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var names []string

		for _, p := range provider.Builtins() {
			names = append(names, p.Name)
		}

		for _, p := range provider.Customs() {
			names = append(names, p.Name)
		}

		return names, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.ProvidersDefault, rootCmd.PersistentFlags().Lookup("provider")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist observed tracks to the localized listening log")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnUpdate, rootCmd.PersistentFlags().Lookup("write-history")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})
}

// rootCmd defines the entry point for the nowbar application.
var rootCmd = &cobra.Command{
	Use:   constant.Nowbar,
	Short: "A now playing widget for desktop media sessions, in the terminal",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A now playing widget for desktop media sessions, in the terminal"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		e, err := connectEngine()
		handleErr(err)

		handleErr(tui.Run(&tui.Options{Engine: e}))
	},
}

// connectEngine connects the configured provider and assembles the engine
// around it.
func connectEngine() (*engine.Engine, error) {
	info, ok := provider.Default()
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", viper.GetString(key.ProvidersDefault))
	}

	p, err := info.Connect()
	if err != nil {
		return nil, err
	}

	interval := time.Duration(viper.GetInt(key.TimelineTickInterval)) * time.Millisecond
	itp := timeline.New(interval)

	var art store.Artwork
	if viper.GetBool(key.ArtworkEnabled) {
		art = artwork.NewManager(where.Artwork())
	}

	var recorder engine.Recorder
	if viper.GetBool(key.HistorySaveOnUpdate) {
		recorder = history.Saver{}
	}

	return engine.New(p, store.New(art, itp), itp, recorder), nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
