// Package ui writes job outcomes, printer lists and rule tables in the
// format the user asked for: styled terminal output, plain text or JSON.
package ui

import (
	"io"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/ui/json"
	"github.com/arthur-debert/printdispatch/pkg/ui/terminal"
	"github.com/arthur-debert/printdispatch/pkg/ui/text"
)

// Renderer writes display values from pkg/ui/display
type Renderer interface {
	// RenderResult writes a job report, printer list or rule report
	RenderResult(result interface{}) error

	// RenderError writes a failure with its stage and platform code
	RenderError(err error) error
}

// NewRenderer returns the renderer for format writing to w. Auto is
// resolved against w first.
func NewRenderer(format Format, w io.Writer) (Renderer, error) {
	switch Resolve(format, w) {
	case FormatTerminal:
		return terminal.New(w)
	case FormatText:
		return text.New(w)
	case FormatJSON:
		return json.New(w)
	}
	return nil, errors.Newf(errors.ErrInternal, "no renderer for format %q", string(format))
}
