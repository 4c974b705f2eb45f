// Package dispatcher turns a document path into a delivery decision and
// carries it out. It picks the destination printer from the rule table
// (first match wins), extracts the file extension, chooses between raw
// spooling and the external PDF helper, and hands the job to exactly one
// of them.
package dispatcher

import (
	"strings"

	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/arthur-debert/printdispatch/pkg/rules"
	"github.com/rs/zerolog"
)

// DefaultSentinel is the destination used when no rule matches
const DefaultSentinel = "No Printer Selected"

// Result is the outcome of evaluating a filename against the rule table
type Result struct {
	// Destination is the matched printer, or the sentinel
	Destination string `json:"destination"`

	// Extension is the text after the last dot of the file name, empty
	// when there is none or when no rule matched
	Extension string `json:"extension"`

	// Matched reports whether any rule matched
	Matched bool `json:"matched"`

	// RuleIndex is the 0-based index of the matching rule, -1 otherwise
	RuleIndex int `json:"rule_index"`

	// RuleLine is the rule file line of the matching rule, 0 otherwise
	RuleLine int `json:"rule_line,omitempty"`
}

// Dispatcher evaluates filenames against a rule table
type Dispatcher struct {
	sentinel string
	logger   zerolog.Logger
}

// New creates a dispatcher; an empty sentinel selects DefaultSentinel
func New(sentinel string) *Dispatcher {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return &Dispatcher{
		sentinel: sentinel,
		logger:   logging.GetLogger("dispatcher"),
	}
}

// Dispatch evaluates filename with the default sentinel
func Dispatch(filename string, table *rules.Table) Result {
	return New("").Dispatch(filename, table)
}

// Dispatch returns the first matching rule's destination together with
// the file extension. Later rules are not consulted after a match.
func (d *Dispatcher) Dispatch(filename string, table *rules.Table) Result {
	rule, idx, ok := table.Match(filename)
	if !ok {
		d.logger.Info().
			Str("file", filename).
			Int("rules", table.Len()).
			Str("destination", d.sentinel).
			Msg("No rule matched")
		return Result{
			Destination: d.sentinel,
			RuleIndex:   -1,
		}
	}

	result := Result{
		Destination: rule.Destination,
		Extension:   Extension(filename),
		Matched:     true,
		RuleIndex:   idx,
		RuleLine:    rule.Line,
	}
	d.logger.Info().
		Str("file", filename).
		Str("pattern", rule.Pattern).
		Int("ruleIndex", idx).
		Str("destination", result.Destination).
		Str("extension", result.Extension).
		Msg("Rule matched")
	return result
}

// Extension returns the text after the last '.' of the file's base name,
// exactly as written. A dot that belongs to a directory component does not
// count.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	ext := filename[i+1:]
	if strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
