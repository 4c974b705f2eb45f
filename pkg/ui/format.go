package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/printdispatch/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is a canonical report format, as stored in output.format
type Format string

const (
	FormatAuto     = Format(config.OutputAuto)
	FormatTerminal = Format(config.OutputTerm)
	FormatText     = Format(config.OutputText)
	FormatJSON     = Format(config.OutputJSON)
)

// ParseFormat accepts every spelling the output.format setting accepts
func ParseFormat(name string) (Format, error) {
	canonical, err := config.NormalizeOutputFormat(name)
	if err != nil {
		return FormatAuto, err
	}
	return Format(canonical), nil
}

// Resolve settles auto against the writer a report goes to. Styled
// output is only used on a colour-capable terminal; buffers, pipes,
// redirected files and NO_COLOR get plain text.
func Resolve(f Format, w io.Writer) Format {
	if f != FormatAuto {
		return f
	}
	file, ok := w.(*os.File)
	if !ok {
		return FormatText
	}
	fd := file.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return FormatText
	}
	if termenv.NewOutput(file).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}
