package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnolang/tcalc/calc"
	"github.com/gnolang/tcalc/internal/engine"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestRunEval(t *testing.T) {
	session := engine.NewSession()
	exprs := []string{"double X = X * 2", "double 21", "+ 1"}

	results, err := runEval(context.Background(), session, exprs, nil, strings.NewReader(""))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printResults(&out, results, false))
	assert.Equal(t, "defined: double X = X * 2\n42\n43\n", out.String())
}

func TestRunEvalFilesThenArguments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "defs.calc")
	require.NoError(t, os.WriteFile(path, []byte("# helpers\nhalf X = X / 2\n"), 0o644))

	results, err := runEval(context.Background(), engine.NewSession(), []string{"half 5"}, []string{path}, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, path, results[0].Source)
	assert.Equal(t, "5/2", results[1].Output.String())
}

func TestRunEvalReadsStdin(t *testing.T) {
	in := strings.NewReader("3 times 4\n* 2\n")

	results, err := runEval(context.Background(), engine.NewSession(), nil, nil, in)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "12", results[0].Output.String())
	assert.Equal(t, "24", results[1].Output.String())
}

func TestPrintResultsReportsFailures(t *testing.T) {
	session := engine.NewSession()
	results := []calc.Result{
		calc.ProcessLine(session, "1 + 1"),
		calc.ProcessLine(session, `"open`),
	}

	var out bytes.Buffer
	err := printResults(&out, results, true)
	require.Error(t, err)
	assert.Equal(t, "1 of 2 lines failed", err.Error())
	assert.Equal(t, "2  (1 step)\nerror: line 1 col 1: string is not terminated\n --> \"open\n", out.String())
}

func TestInitConfigurationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")

	got, err := initConfigurationFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	config, err := calc.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, calc.DefaultConfig(), config)
}

func TestReplHandleLine(t *testing.T) {
	var out bytes.Buffer
	r := &repl{session: engine.NewSession(), out: &out}

	tests := []struct {
		line     string
		expected string
		exit     bool
	}{
		{line: "1 + 2", expected: "3\n"},
		{line: ":steps", expected: "step counts on\n"},
		{line: "+ 1", expected: "4  (1 step)\n"},
		{line: "inc X = X + 1", expected: "defined: inc X = X + 1\n"},
		{line: "inc 9", expected: "10  (2 steps)\n"},
		{line: ":reset", expected: "session reset\n"},
		{line: "inc 9", expected: "inc 9  (0 steps)\n"},
		{line: ":dump maybe", expected: "usage: :dump on|off\n"},
		{line: ":frobnicate", expected: "unknown command :frobnicate, type :help for help\n"},
		{line: ":quit", exit: true},
	}

	for _, tt := range tests {
		out.Reset()
		exit := r.handleLine(tt.line)
		assert.Equal(t, tt.exit, exit, tt.line)
		assert.Equal(t, tt.expected, out.String(), tt.line)
	}
}

func TestReplReload(t *testing.T) {
	var out bytes.Buffer
	r := &repl{session: engine.NewSession(), out: &out}
	r.handleLine("7")

	config := calc.Config{Rules: []calc.RuleConfig{{Name: "answer", Pattern: "answer", Replacement: "42"}}}
	require.NoError(t, r.reload(config))
	assert.Contains(t, out.String(), "configuration reloaded: 1 rules")
	assert.True(t, r.session.Previous().IsEmpty(), "a reload starts a fresh session")

	out.Reset()
	r.handleLine("answer")
	assert.Equal(t, "42\n", out.String())

	bad := calc.Config{Rules: []calc.RuleConfig{{Pattern: "f X", Replacement: "Y"}}}
	assert.Error(t, r.reload(bad))
	assert.Equal(t, "42", r.session.Previous().String())
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExecuteEvalWithConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), calc.DefaultConfigPath)
	require.NoError(t, calc.WriteConfig(path, calc.DefaultConfig()))

	out, err := executeRoot(t, "eval", "--config", path, "square 4", "increment [0, 1]")
	require.NoError(t, err)
	assert.Equal(t, "16\n[1, 2]\n", out)

	out, err = executeRoot(t, "--config", path, "2 ^ 10")
	require.NoError(t, err)
	assert.Equal(t, "1024\n", out)
}

func TestExecuteRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), calc.DefaultConfigPath)
	require.NoError(t, calc.WriteConfig(path, calc.DefaultConfig()))

	out, err := executeRoot(t, "rules", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "| square  square X = X * X\n")
	assert.Contains(t, out, "| increment  increment [H ... T] = [ H + 1 ... increment T ]\n")
}

func TestExecuteMissingConfiguration(t *testing.T) {
	_, err := executeRoot(t, "eval", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "1")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
