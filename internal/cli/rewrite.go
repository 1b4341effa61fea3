package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstrip/internal/logging"
	"github.com/yaklabco/mdstrip/pkg/config"
	"github.com/yaklabco/mdstrip/pkg/fsutil"
	"github.com/yaklabco/mdstrip/pkg/reporter"
	"github.com/yaklabco/mdstrip/pkg/rewrite"
)

type rewriteFlags struct {
	format  string
	flavor  string
	ignore  []string
	jobs    int
	dryRun  bool
	backup  bool
	check   bool
	compact bool
}

func newRewriteCommand() *cobra.Command {
	flags := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "rewrite [paths...]",
		Short: "Strip .md from relative links in Markdown sources",
		Long:  rewriteLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args, flags)
		},
	}

	addRunFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show changes without writing files")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "write a .mdstrip.bak copy before rewriting a file")

	return cmd
}

const rewriteLongDescription = `Rewrite Markdown files in place so that relative link targets no longer
end in ".md". Anchors are kept: "./guide.md#setup" becomes "./guide#setup".
Absolute URLs such as "https://example.com/page.md" are left alone.

Only the ".md" bytes are removed; the rest of each file is untouched.
Reference definitions are reported but not rewritten.

Examples:
  mdstrip rewrite                      # Rewrite the current directory
  mdstrip rewrite docs/ README.md      # Rewrite specific paths
  mdstrip rewrite --dry-run            # Show a diff without writing
  mdstrip rewrite --backup             # Keep .mdstrip.bak copies`

func newLinksCommand() *cobra.Command {
	flags := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "links [paths...]",
		Short: "Report relative links that would lose their .md suffix",
		Long:  linksLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.dryRun = true
			return runRewrite(cmd, args, flags)
		},
	}

	addRunFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit with status 1 if any link would change")

	return cmd
}

const linksLongDescription = `List every link whose target would change, without writing anything.

Examples:
  mdstrip links                        # Report for the current directory
  mdstrip links --format json          # Machine-readable output
  mdstrip links --format diff          # Show the pending changes as a diff
  mdstrip links --check                # Fail in CI when links need rewriting`

func addRunFlags(cmd *cobra.Command, flags *rewriteFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "additional glob patterns to ignore")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
}

func runRewrite(cmd *cobra.Command, args []string, flags *rewriteFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return errors.Join(ErrUsage, err)
	}

	cliCfg := &config.Config{
		Format: config.OutputFormat(format),
		Jobs:   flags.jobs,
		DryRun: flags.dryRun,
	}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	if flags.backup {
		cliCfg.Backups.Enabled = true
	}

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	opts := rewrite.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   cfg.Extensions,
		ExcludeGlobs: append(append([]string{}, cfg.Ignore...), flags.ignore...),
		Jobs:         cfg.Jobs,
		File: rewrite.FileOptions{
			DryRun: cfg.DryRun,
			Backup: fsutil.BackupConfig{
				Enabled: cfg.Backups.Enabled,
				Mode:    fsutil.BackupMode(cfg.Backups.Mode),
			},
		},
	}

	logger.Debug("starting rewrite run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
	)

	runner := rewrite.NewRunner(rewrite.NewPipeline(string(cfg.Flavor)))

	result, err := runner.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("rewrite run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		DryRun:      cfg.DryRun,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, flags.check) {
	case ExitFileErrors:
		return ErrFilesFailed
	case ExitLinksFound:
		return ErrLinksFound
	default:
		return nil
	}
}
