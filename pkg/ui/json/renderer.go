// Package json writes reports as indented JSON, one document per call
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/ui/display"
)

// Renderer writes display values for scripts
type Renderer struct {
	w io.Writer
}

// errorDocument keeps failures apart from reports at the top level
type errorDocument struct {
	Error *display.ErrorReport `json:"error"`
}

// New creates a JSON renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{w: w}, nil
}

// RenderResult writes result as one document
func (r *Renderer) RenderResult(result interface{}) error {
	return r.encode(result)
}

// RenderError writes {"error": {...}}
func (r *Renderer) RenderError(err error) error {
	return r.encode(errorDocument{Error: display.NewErrorReport(err)})
}

func (r *Renderer) encode(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode report")
	}
	_, err = r.w.Write(append(data, '\n'))
	return err
}
