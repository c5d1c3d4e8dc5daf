// Package cmd implements the command-line interface for nowbar.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nowbar-cli/nowbar/color"
	"github.com/nowbar-cli/nowbar/filesystem"
	"github.com/nowbar-cli/nowbar/icon"
	"github.com/nowbar-cli/nowbar/provider"
	"github.com/nowbar-cli/nowbar/style"
	"github.com/nowbar-cli/nowbar/util"
	"github.com/nowbar-cli/nowbar/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(providersCmd)
}

// providersCmd provides a parent command for managing session providers.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage built-in and custom session providers",
}

func init() {
	providersCmd.AddCommand(providersListCmd)

	providersListCmd.Flags().BoolP("raw", "r", false, "Suppress header and metadata descriptions in the output")
	providersListCmd.Flags().BoolP("custom", "c", false, "Display only user-installed custom Lua providers")
	providersListCmd.Flags().BoolP("builtin", "b", false, "Display only pre-compiled built-in providers")

	providersListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	providersListCmd.SetOut(os.Stdout)
}

// providersListCmd displays a summary of all registered session providers.
var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display a collection of all registered session providers",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader := !lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if printHeader {
				cmd.Println(headerStyle(s))
			}
		}

		printBuiltin := func() {
			h("Builtin:")
			for _, p := range provider.Builtins() {
				cmd.Println(p.Name)
			}
		}

		printCustom := func() {
			h("Custom:")
			for _, p := range provider.Customs() {
				cmd.Println(p.Name)
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printBuiltin()
		case lo.Must(cmd.Flags().GetBool("custom")):
			printCustom()
		default:
			printBuiltin()
			if printHeader {
				cmd.Println()
			}
			printCustom()
		}
	},
}

func init() {
	providersCmd.AddCommand(providersRemoveCmd)

	providersRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Specify the name of the custom provider(s) to uninstall")
	lo.Must0(providersRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		scripts, err := filesystem.API().ReadDir(where.Providers())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.FilterMap(scripts, func(item os.FileInfo, _ int) (string, bool) {
			name := item.Name()
			if !strings.HasSuffix(name, provider.CustomProviderExtension) {
				return "", false
			}

			return util.FileStem(filepath.Base(name)), true
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// providersRemoveCmd facilitates the uninstallation of custom Lua providers.
var providersRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Permanently uninstall specified custom Lua providers from the system",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Providers(), name+provider.CustomProviderExtension)
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}
