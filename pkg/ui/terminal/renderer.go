// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"

	"github.com/arthur-debert/printdispatch/pkg/ui/display"
	"github.com/arthur-debert/printdispatch/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles and pterm tables
type Renderer struct {
	output io.Writer
	styles styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		styles: styles.Default,
	}, nil
}

func (r *Renderer) style(name, text string) string {
	return r.styles.Render(name, text)
}

// RenderResult renders a display value with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.JobReport:
		return r.write(display.FormatJob(v, r.style))
	case *display.PrinterList:
		return r.renderPrinters(v)
	case *display.RuleReport:
		return r.renderRules(v)
	case *display.ErrorReport:
		return r.write(display.FormatError(v, r.style))
	case fmt.Stringer:
		return r.write(v.String() + "\n")
	default:
		return r.write(fmt.Sprintf("%+v\n", result))
	}
}

func (r *Renderer) renderPrinters(list *display.PrinterList) error {
	if len(list.Printers) == 0 {
		return r.write(display.FormatPrinters(list, r.style))
	}
	data := pterm.TableData{{"#", "Printer"}}
	for i, name := range list.Printers {
		data = append(data, []string{strconv.Itoa(i + 1), name})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	return r.write(r.style("Title", "Installed printers") + "\n" + table + "\n")
}

func (r *Renderer) renderRules(report *display.RuleReport) error {
	out := r.style("Title", "Rules from "+report.File) + "\n"
	if len(report.Rules) == 0 {
		out += r.style("Muted", "no rules") + "\n"
	} else {
		data := pterm.TableData{{"#", "Line", "Pattern", "Printer"}}
		for _, row := range report.Rules {
			data = append(data, []string{
				strconv.Itoa(row.Index + 1),
				strconv.Itoa(row.Line),
				row.Pattern,
				row.Destination,
			})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		out += table + "\n"
	}
	out += display.FormatSkipped(report.Skipped, r.style)
	return r.write(out)
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	return r.write(display.FormatError(display.NewErrorReport(err), r.style))
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}
