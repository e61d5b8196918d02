package formatter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/gnolang/tcalc/internal/engine"
)

// Step is one line of a reduction trace.
type Step struct {
	N         int
	Depth     int
	Rule      string
	Pos       int
	Workspace string
}

// FormatStep renders a trace line. Steps taken inside a user rule's
// replacement are indented by their nesting depth.
func FormatStep(s Step) string {
	indent := strings.Repeat("  ", max(s.Depth-1, 0))
	return lineStyle.Sprintf("%4d | ", s.N) + indent +
		ruleStyle.Sprint(s.Rule) + lineStyle.Sprintf(" at %d", s.Pos) +
		noStyle.Sprint(" => "+s.Workspace) + "\n"
}

type stepCore struct {
	zapcore.Core
	w      io.Writer
	mu     *sync.Mutex
	fields []zapcore.Field
}

// NewStepCore wraps inner so that the engine's step entries are printed to
// w as trace lines. Every other entry goes to inner untouched.
func NewStepCore(inner zapcore.Core, w io.Writer) zapcore.Core {
	return &stepCore{Core: inner, w: w, mu: new(sync.Mutex)}
}

func (c *stepCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= zapcore.InfoLevel || c.Core.Enabled(lvl)
}

func (c *stepCore) With(fields []zapcore.Field) zapcore.Core {
	return &stepCore{
		Core:   c.Core.With(fields),
		w:      c.w,
		mu:     c.mu,
		fields: append(c.fields[:len(c.fields):len(c.fields)], fields...),
	}
}

func (c *stepCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if ent.Message == engine.StepMessage {
		return ce.AddCore(ent, c)
	}
	return c.Core.Check(ent, ce)
}

func (c *stepCore) Write(_ zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	line := FormatStep(stepFromFields(enc.Fields))

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := io.WriteString(c.w, line)
	return err
}

func stepFromFields(fields map[string]interface{}) Step {
	return Step{
		N:         intField(fields, "step"),
		Depth:     intField(fields, "depth"),
		Rule:      fmt.Sprint(fields["rule"]),
		Pos:       intField(fields, "pos"),
		Workspace: fmt.Sprint(fields["workspace"]),
	}
}

func intField(fields map[string]interface{}, key string) int {
	if v, ok := fields[key].(int64); ok {
		return int(v)
	}
	return 0
}
