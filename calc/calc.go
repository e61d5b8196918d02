// Package calc wires the rewriting engine to configuration files and
// batches of input lines.
package calc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gnolang/tcalc/internal/engine"
	"github.com/gnolang/tcalc/internal/lexer"
	"github.com/gnolang/tcalc/internal/token"
)

// Calculator is the part of a session that batch processing drives.
type Calculator interface {
	ParseNext(text string) (token.Sequence, error)
	LastStepCount() int
}

var _ Calculator = (*engine.Session)(nil)

// Result is the outcome of one input line.
type Result struct {
	Source  string
	Line    int
	Input   string
	Output  token.Sequence
	Steps   int
	Defined bool
	Err     error
}

// New builds a session from the configuration file at configurationPath.
// An empty path means built-in rules only. opts are applied after the
// configuration and override it.
func New(configurationPath string, logger *zap.Logger, opts ...engine.Option) (*engine.Session, error) {
	var config Config
	if configurationPath != "" {
		var err error
		config, err = LoadConfig(configurationPath)
		if err != nil {
			return nil, err
		}
	}
	return NewFromConfig(config, logger, opts...)
}

// NewFromConfig builds a session from an already loaded configuration.
func NewFromConfig(config Config, logger *zap.Logger, opts ...engine.Option) (*engine.Session, error) {
	base, err := config.Options()
	if err != nil {
		return nil, err
	}
	all := append([]engine.Option{engine.WithLogger(logger)}, base...)
	return engine.NewSession(append(all, opts...)...), nil
}

// ProcessLine feeds one line to the calculator. Definitions and
// evaluations share the same entry point; the result records which one it
// was.
func ProcessLine(calculator Calculator, input string) Result {
	out, err := calculator.ParseNext(input)
	return Result{
		Input:   input,
		Output:  out,
		Steps:   calculator.LastStepCount(),
		Defined: err == nil && isDefinition(input),
		Err:     err,
	}
}

// ProcessLines feeds lines to the calculator in order. Blank lines and
// lines starting with '#' are skipped. A failing line is recorded in its
// result and processing continues; only cancellation stops the batch
// early.
func ProcessLines(
	ctx context.Context,
	logger *zap.Logger,
	calculator Calculator,
	lines []string,
) ([]Result, error) {
	var results []Result
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if skipLine(line) {
			continue
		}
		res := ProcessLine(calculator, line)
		res.Line = i + 1
		if res.Err != nil && logger != nil {
			logger.Warn("Error processing line", zap.Int("line", res.Line), zap.Error(res.Err))
		}
		results = append(results, res)
	}
	return results, nil
}

// ProcessReader reads lines from r and processes them with ProcessLines.
func ProcessReader(
	ctx context.Context,
	logger *zap.Logger,
	calculator Calculator,
	r io.Reader,
) ([]Result, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ProcessLines(ctx, logger, calculator, lines)
}

// ProcessFiles processes each file in turn against the same calculator, so
// rules defined in one file are visible in the next.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	calculator Calculator,
	paths []string,
) ([]Result, error) {
	var all []Result
	for _, path := range paths {
		results, err := processFile(ctx, logger, calculator, path)
		all = append(all, results...)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing file", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
	}
	return all, nil
}

func processFile(ctx context.Context, logger *zap.Logger, calculator Calculator, path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}
	defer f.Close()

	results, err := ProcessReader(ctx, logger, calculator, f)
	for i := range results {
		results[i].Source = path
	}
	return results, err
}

func skipLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func isDefinition(input string) bool {
	seq, err := lexer.Lex(input)
	if err != nil {
		return false
	}
	_, _, ok := lexer.Definition(seq)
	return ok
}
