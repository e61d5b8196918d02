package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnolang/tcalc/calc"
	"github.com/gnolang/tcalc/formatter"
	"github.com/gnolang/tcalc/internal/engine"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile   string
	timeout   time.Duration
	maxSteps  int
	dumpSteps bool
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "tcalc [expression...]",
	Short:            "tcalc - a calculator built on user-extensible rewrite rules",
	Args:             cobra.ArbitraryArgs,
	SilenceUsage:     true,
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// no expression: start the interactive calculator
		if len(args) == 0 {
			return replCmd.RunE(replCmd, args)
		}
		// Format: tcalc [expr ...] => behaves like the eval subcommand
		return evalCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", calc.DefaultConfigPath, "Configuration file with preloaded rules")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Give up on a batch after this long")
	rootCmd.PersistentFlags().IntVar(&maxSteps, "max-steps", 0, "Step budget of each input line (0 keeps the configured budget)")
	rootCmd.PersistentFlags().BoolVar(&dumpSteps, "dump-steps", false, "Print every rewrite step")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(rulesCmd)
}

// loadConfig reads the configuration file. A missing file is only an
// error when it was asked for explicitly.
func loadConfig(cmd *cobra.Command) (calc.Config, error) {
	config, err := calc.LoadConfig(cfgFile)
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		return calc.Config{}, nil
	}
	return config, err
}

// newSession builds a session from config with the command-line overrides
// applied. Steps are traced to out.
func newSession(config calc.Config, out io.Writer) (*engine.Session, error) {
	opts := []engine.Option{engine.WithMaxSteps(maxSteps)}
	if dumpSteps {
		opts = append(opts, engine.WithDumpSteps(true))
	}
	return calc.NewFromConfig(config, stepLogger(out), opts...)
}

func stepLogger(out io.Writer) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return formatter.NewStepCore(c, out)
	}))
}

func runWithTimeout(ctx context.Context, f func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- f()
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("tcalc timed out: %w", ctx.Err())
	case err := <-done:
		return err
	}
}
