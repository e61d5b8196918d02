package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"github.com/fatih/color"

	"github.com/gnolang/tcalc/calc"
	"github.com/gnolang/tcalc/internal/compiler"
	"github.com/gnolang/tcalc/internal/engine"
)

var (
	errorStyle      = color.New(color.FgRed, color.Bold)
	warningStyle    = color.New(color.FgHiYellow, color.Bold)
	ruleStyle       = color.New(color.FgYellow, color.Bold)
	fileStyle       = color.New(color.FgCyan, color.Bold)
	lineStyle       = color.New(color.FgHiBlue, color.Bold)
	messageStyle    = color.New(color.FgRed, color.Bold)
	suggestionStyle = color.New(color.FgGreen, color.Bold)
	noStyle         = color.New(color.FgWhite)
)

/***** Error Builder *****/

// ErrorData is what the error template renders.
type ErrorData struct {
	Title    string
	Location string
	Lines    []string
	Note     string
}

const errorTemplate = `{{header .Title}}
{{- if .Location}}
{{location .Location}}
{{- end}}
{{- range .Lines}}
{{snippet .}}
{{- end}}
{{- if .Note}}
{{note .Note}}
{{- end}}
`

var errorTmpl = template.Must(template.New("error").Funcs(template.FuncMap{
	"header":   header,
	"location": location,
	"snippet":  snippet,
	"note":     note,
}).Parse(errorTemplate))

// FormatError renders a failed input line. Malformed rules and exhausted
// step budgets get their details spelled out; other errors are shown as
// they are.
func FormatError(res calc.Result) string {
	data := errorData(res.Err)
	data.Location = resultLocation(res)

	var buf bytes.Buffer
	if err := errorTmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting error: %v", err)
	}
	return buf.String()
}

func errorData(err error) ErrorData {
	var malformed *compiler.Error
	if errors.As(err, &malformed) {
		return ErrorData{
			Title: compiler.ErrMalformedRule.Error(),
			Lines: []string{malformed.Definition},
			Note:  malformed.Reason,
		}
	}

	var budget *engine.BudgetError
	if errors.As(err, &budget) {
		return ErrorData{
			Title: engine.ErrBudgetExceeded.Error(),
			Lines: []string{budget.Workspace.String()},
			Note: fmt.Sprintf("%d steps taken, limit %d; the rules may not terminate",
				budget.Steps, budget.Limit),
		}
	}

	return ErrorData{Title: err.Error()}
}

func resultLocation(res calc.Result) string {
	switch {
	case res.Source != "":
		return fmt.Sprintf("%s:%d: %s", res.Source, res.Line, res.Input)
	case res.Line > 0:
		return fmt.Sprintf("line %d: %s", res.Line, res.Input)
	default:
		return res.Input
	}
}

// utils functions used in the text templates

func header(title string) string {
	return errorStyle.Sprint("error: ") + ruleStyle.Sprint(title)
}

func location(loc string) string {
	return lineStyle.Sprint(" --> ") + fileStyle.Sprint(loc)
}

func snippet(line string) string {
	return lineStyle.Sprint("  | ") + noStyle.Sprint(line)
}

func note(text string) string {
	return lineStyle.Sprint("  = ") + messageStyle.Sprint(text)
}
