// Package printers lists the printers installed on this machine. The list
// is informational; it never takes part in choosing a destination.
package printers

import (
	"bufio"
	"context"
	"sort"
	"strings"

	"github.com/arthur-debert/printdispatch/pkg/logging"
)

// Source returns printer names from the host
type Source interface {
	Names(ctx context.Context) ([]string, error)
}

// Enumerator lists printers, swallowing enumeration failures
type Enumerator struct {
	source Source
}

// New creates an enumerator over source. A nil source uses the platform.
func New(source Source) *Enumerator {
	if source == nil {
		source = NewPlatformSource()
	}
	return &Enumerator{source: source}
}

// List returns the installed printer names sorted and de-duplicated. A
// failure is logged and yields an empty list.
func (e *Enumerator) List(ctx context.Context) []string {
	logger := logging.GetLogger("printers")

	names, err := e.source.Names(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Printer enumeration failed")
		return []string{}
	}
	names = normalize(names)
	logger.Debug().Int("count", len(names)).Strs("printers", names).Msg("Enumerated printers")
	return names
}

func normalize(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// parseLpstat reads printer names from `lpstat -e` (one name per line) or
// `lpstat -p` ("printer NAME is idle..." lines).
func parseLpstat(out string) []string {
	var names []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "printer" && len(fields) > 1 {
			names = append(names, fields[1])
			continue
		}
		if len(fields) == 1 {
			names = append(names, fields[0])
		}
	}
	return names
}
