package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/gnolang/tcalc/calc"
	"github.com/gnolang/tcalc/internal/token"
)

// FormatResult renders the outcome of one input line, ending in a newline.
// With showSteps, evaluations also report how many steps they took.
func FormatResult(res calc.Result, showSteps bool) string {
	if res.Err != nil {
		return FormatError(res)
	}
	if res.Defined {
		return suggestionStyle.Sprint("defined: ") + noStyle.Sprint(res.Input) + "\n"
	}

	var b strings.Builder
	b.WriteString(FormatValue(res.Output))
	if showSteps {
		b.WriteString(lineStyle.Sprintf("  (%d %s)", res.Steps, plural(res.Steps, "step")))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatResults renders results in order.
func FormatResults(results []calc.Result, showSteps bool) string {
	var b strings.Builder
	for _, res := range results {
		b.WriteString(FormatResult(res, showSteps))
	}
	return b.String()
}

// FormatValue colours a workspace token by token: numbers, texts and
// booleans stand out from the symbols between them.
func FormatValue(seq token.Sequence) string {
	parts := make([]string, 0, seq.Len())
	for _, t := range seq.Tokens() {
		parts = append(parts, valueStyle(t).Sprint(t.String()))
	}
	return strings.Join(parts, " ")
}

func valueStyle(t token.Token) *color.Color {
	switch t.Kind() {
	case token.KindNumber:
		return fileStyle
	case token.KindText:
		return suggestionStyle
	case token.KindBool:
		return warningStyle
	default:
		return noStyle
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return fmt.Sprintf("%ss", word)
}
