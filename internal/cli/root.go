package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/officegen-labs/officegen/internal/branding"
	"github.com/officegen-labs/officegen/internal/config"
	"github.com/officegen-labs/officegen/internal/printer"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates Outlook mail add-in projects: the add-in manifest, the
client apps for the selected extension points and the project's build configuration.
Running it again in an existing project merges into the configuration already there.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = l

		config.Load()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every planned file")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil && !reported(err) {
		printer.New(os.Stdout, os.Stderr).Error("Error", err.Error(), nil)
	}
	return err
}

// reportedError marks an error whose details were already printed.
type reportedError struct{ msg string }

func (e *reportedError) Error() string { return e.msg }

func reported(err error) bool {
	_, ok := err.(*reportedError)
	return ok
}

// newPrinter returns a printer bound to the command's streams.
func newPrinter(cmd *cobra.Command) *printer.Printer {
	return printer.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
