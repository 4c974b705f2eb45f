// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/printdispatch/pkg/ui/display"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders a display value as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var out string
	switch v := result.(type) {
	case *display.JobReport:
		out = display.FormatJob(v, display.Plain)
	case *display.PrinterList:
		out = display.FormatPrinters(v, display.Plain)
	case *display.RuleReport:
		out = display.FormatRules(v, display.Plain)
	case *display.ErrorReport:
		out = display.FormatError(v, display.Plain)
	case fmt.Stringer:
		out = v.String() + "\n"
	default:
		out = fmt.Sprintf("%+v\n", result)
	}
	_, err := io.WriteString(r.output, out)
	return err
}

// RenderError renders an error naming the failed stage
func (r *Renderer) RenderError(err error) error {
	_, werr := io.WriteString(r.output, display.FormatError(display.NewErrorReport(err), display.Plain))
	return werr
}
