package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdstrip/internal/configloader"
	"github.com/yaklabco/mdstrip/internal/logging"
	"github.com/yaklabco/mdstrip/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdstrip configuration file",
		Long: `Create a new .mdstrip.yml configuration file in the current directory
with the default site settings. When the file already exists you are asked
before it is replaced, unless --force is given or input is not a terminal.

Examples:
  mdstrip init                      Create .mdstrip.yml
  mdstrip init --force              Overwrite an existing file
  mdstrip init --output site.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !isInteractive(cmd.InOrStdin()) {
			return errors.Join(ErrUsage, fmt.Errorf("file %q already exists; use --force to overwrite", flags.output))
		}

		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("%s already exists. Overwrite? [y/N] ", flags.output))
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("kept existing configuration", logging.FieldPath, flags.output)
			return nil
		}
	}

	if err := configloader.WriteConfig(config.NewConfig(), absPath); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'mdstrip links' to see which links would change")

	return nil
}

// isInteractive returns true if in is a terminal.
func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := io.WriteString(out, prompt); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read response: %w", err)
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
