// Package cli provides the Cobra command structure for mdstrip.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstrip/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdstrip command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdstrip",
		Short: "Strip .md from relative Markdown link targets",
		Long: `mdstrip removes the ".md" suffix from relative link targets in Markdown,
so that links written for a repository browser also work on the rendered
site: "./gleam/intro.md#types" becomes "./gleam/intro#types".

It can rewrite sources in place with a minimal diff, report pending changes
for CI, and render a small documentation site with the links stripped.`,
		Version: info.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLinksCommand())
	rootCmd.AddCommand(newRewriteCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
