package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdstrip/internal/logging"
	"github.com/yaklabco/mdstrip/pkg/config"
	"github.com/yaklabco/mdstrip/pkg/render"
)

type renderFlags struct {
	out     string
	content string
	watch   bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the Markdown site to HTML",
		Long: `Render every page under the site content directory to HTML, with relative
".md" link targets stripped and an autogenerated sidebar.

Examples:
  mdstrip render                        # Build site.content_dir into site.out_dir
  mdstrip render --out public           # Write the site elsewhere
  mdstrip render --watch                # Rebuild on changes until interrupted`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (default: site.out_dir)")
	cmd.Flags().StringVar(&flags.content, "content", "", "content directory (default: site.content_dir)")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rebuild when content changes")

	return cmd
}

func runRender(cmd *cobra.Command, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, workDir, err := loadConfig(cmd, &config.Config{
		Site: config.SiteConfig{OutDir: flags.out, ContentDir: flags.content},
	})
	if err != nil {
		return err
	}

	site, err := render.NewSite(cfg.Site, workDir)
	if err != nil {
		return fmt.Errorf("create site: %w", err)
	}
	site.Extensions = cfg.Extensions

	if !flags.watch {
		result, err := site.Build(ctx)
		if err != nil {
			return fmt.Errorf("build site: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rendered %d pages to %s (%d updated)\n",
			len(result.Pages), site.OutDir(), result.Written)
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := site.Watch(ctx, render.WatchOptions{}); err != nil {
		return fmt.Errorf("watch site: %w", err)
	}

	logger.Info("stopped watching")
	return nil
}
