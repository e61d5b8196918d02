package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tcalc/calc"
	"github.com/gnolang/tcalc/formatter"
)

var (
	evalFiles []string
	showSteps bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [expression...]",
	Short: "Evaluate expressions and rule definitions",
	Long: `Evaluates each argument as one input line, in order, in a single session.
Lines from --file are read first. Without arguments or files, lines are read
from standard input.

Example) tcalc eval 'double X = X * 2' 'double 21' '+ 1'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := loadConfig(cmd)
		if err != nil {
			logger.Error("Failed to load configuration", zap.String("path", cfgFile), zap.Error(err))
			return err
		}

		out := cmd.OutOrStdout()
		session, err := newSession(config, out)
		if err != nil {
			logger.Error("Failed to initialize calculator", zap.Error(err))
			return err
		}

		var results []calc.Result
		err = runWithTimeout(ctx, func() error {
			var err error
			results, err = runEval(ctx, session, args, evalFiles, cmd.InOrStdin())
			return err
		})
		if err != nil {
			return err
		}

		return printResults(out, results, showSteps)
	},
}

func init() {
	evalCmd.Flags().StringSliceVarP(&evalFiles, "file", "f", nil, "Files of input lines to evaluate")
	evalCmd.Flags().BoolVar(&showSteps, "steps", false, "Show how many steps each evaluation took")
}

func runEval(
	ctx context.Context,
	calculator calc.Calculator,
	exprs []string,
	files []string,
	stdin io.Reader,
) ([]calc.Result, error) {
	if len(exprs) == 0 && len(files) == 0 {
		return calc.ProcessReader(ctx, logger, calculator, stdin)
	}

	results, err := calc.ProcessFiles(ctx, logger, calculator, files)
	if err != nil {
		return results, err
	}
	more, err := calc.ProcessLines(ctx, logger, calculator, exprs)
	return append(results, more...), err
}

// printResults writes every result and reports an error when any line
// failed, so the exit status reflects the batch.
func printResults(out io.Writer, results []calc.Result, showSteps bool) error {
	fmt.Fprint(out, formatter.FormatResults(results, showSteps))

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, len(results))
	}
	return nil
}
