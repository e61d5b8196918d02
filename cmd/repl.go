package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/tcalc/calc"
	"github.com/gnolang/tcalc/formatter"
	"github.com/gnolang/tcalc/internal/engine"
)

const (
	historyFile = ".tcalc_history"
	prompt      = "> "
	replHelp    = `Enter an expression to evaluate it, or "pattern = replacement" to define a rule.
Input starting with an operator continues from the previous answer.

  :rules        list the rule library
  :reset        forget defined rules and the previous answer
  :steps        toggle step counts after each answer
  :dump on|off  print every rewrite step
  :help         show this help
  :quit         leave
`
)

var watchConfig bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive calculator session",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			logger.Error("Failed to load configuration", zap.String("path", cfgFile), zap.Error(err))
			return err
		}
		out := cmd.OutOrStdout()
		session, err := newSession(config, out)
		if err != nil {
			return err
		}
		r := &repl{session: session, out: out, showSteps: showSteps}

		if watchConfig {
			w, err := calc.NewWatcher(cfgFile, logger, func(c calc.Config) {
				if err := r.reload(c); err != nil {
					logger.Warn("Failed to rebuild session", zap.Error(err))
				}
			})
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return err
			}
			defer w.Stop()
		}

		return r.run()
	},
}

func init() {
	replCmd.Flags().BoolVarP(&watchConfig, "watch", "w", false, "Reload the configuration file when it changes")
	replCmd.Flags().BoolVar(&showSteps, "steps", false, "Show how many steps each evaluation took")
}

// repl drives one interactive session. The session may be swapped by the
// configuration watcher while the prompt is waiting.
type repl struct {
	mu        sync.Mutex
	session   *engine.Session
	out       io.Writer
	showSteps bool
}

func (r *repl) run() error {
	fmt.Fprintln(r.out, `tcalc - type :help for help`)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(r.out)
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		if exit := r.handleLine(line); exit {
			break
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}

// handleLine evaluates one line or runs a ':' command. It reports whether
// the session should end.
func (r *repl) handleLine(line string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ":") {
		return r.command(strings.Fields(trimmed))
	}

	res := calc.ProcessLine(r.session, line)
	fmt.Fprint(r.out, formatter.FormatResult(res, r.showSteps))
	return false
}

func (r *repl) command(fields []string) bool {
	switch fields[0] {
	case ":quit", ":q", ":exit":
		return true
	case ":help":
		fmt.Fprint(r.out, replHelp)
	case ":rules":
		fmt.Fprint(r.out, formatter.FormatRules(r.session.Rules()))
	case ":reset":
		r.session.Reset()
		fmt.Fprintln(r.out, "session reset")
	case ":steps":
		r.showSteps = !r.showSteps
		fmt.Fprintf(r.out, "step counts %s\n", onOff(r.showSteps))
	case ":dump":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			fmt.Fprintln(r.out, "usage: :dump on|off")
			break
		}
		r.session.SetDumpSteps(fields[1] == "on")
		fmt.Fprintf(r.out, "step dump %s\n", fields[1])
	default:
		fmt.Fprintf(r.out, "unknown command %s, type :help for help\n", fields[0])
	}
	return false
}

// reload replaces the session with one built from config. The previous
// answer and rules defined at the prompt are lost.
func (r *repl) reload(config calc.Config) error {
	session, err := newSession(config, r.out)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session
	fmt.Fprintf(r.out, "\nconfiguration reloaded: %d rules\n", len(config.Rules))
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
