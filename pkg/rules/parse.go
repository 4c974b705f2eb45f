package rules

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/logging"
)

// DefaultSeparator splits pattern from destination
const DefaultSeparator = "|"

// InvalidPatternPolicy decides what a bad regular expression does to the load
type InvalidPatternPolicy int

const (
	// PolicyAbort fails the whole load
	PolicyAbort InvalidPatternPolicy = iota
	// PolicySkip drops the line and continues
	PolicySkip
)

// ParsePolicy converts the settings value into a policy
func ParsePolicy(s string) (InvalidPatternPolicy, error) {
	switch strings.ToLower(s) {
	case "abort", "":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyAbort, errors.Newf(errors.ErrSettingsInvalid, "unknown invalid-pattern policy %q", s)
	}
}

// Options controls parsing
type Options struct {
	// Separator is the single character between pattern and destination
	Separator string
	// InvalidPattern selects abort or skip on a bad regular expression
	InvalidPattern InvalidPatternPolicy
	// TrimDestination strips surrounding whitespace from printer names
	TrimDestination bool
}

// DefaultOptions returns the classic rule file behaviour
func DefaultOptions() Options {
	return Options{
		Separator:      DefaultSeparator,
		InvalidPattern: PolicyAbort,
	}
}

// Compile builds the case-insensitive matcher for a rule pattern
func Compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile("(?i)" + pattern)
}

// Parse reads rules from r, preserving line order.
func Parse(r io.Reader, opts Options) (*Table, error) {
	logger := logging.GetLogger("rules.parse")

	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	table := &Table{separator: sep}

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimRight(s.Text(), "\r")
		if line == "" {
			continue
		}

		idx := strings.Index(line, sep)
		if idx < 0 {
			logger.Debug().
				Int("line", lineNo).
				Str("text", line).
				Msg("Skipping line without separator")
			table.Skipped = append(table.Skipped, SkippedLine{
				Line:   lineNo,
				Text:   line,
				Reason: SkipNoSeparator,
			})
			continue
		}

		pattern := line[:idx]
		destination := line[idx+len(sep):]
		if opts.TrimDestination {
			destination = strings.TrimSpace(destination)
		}

		re, err := Compile(pattern)
		if err != nil {
			if opts.InvalidPattern == PolicySkip {
				logger.Warn().
					Err(err).
					Int("line", lineNo).
					Str("pattern", pattern).
					Msg("Skipping rule with invalid pattern")
				table.Skipped = append(table.Skipped, SkippedLine{
					Line:   lineNo,
					Text:   line,
					Reason: SkipInvalidPattern,
					Err:    err,
				})
				continue
			}
			return nil, errors.Wrapf(err, errors.ErrInvalidPattern,
				"line %d: invalid pattern %q", lineNo, pattern).
				WithDetail("line", lineNo).
				WithDetail("pattern", pattern)
		}

		table.Rules = append(table.Rules, Rule{
			Pattern:     pattern,
			Destination: destination,
			Line:        lineNo,
			re:          re,
		})
	}

	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigUnavailable, "failed to read rule table")
	}

	logger.Debug().
		Int("rules", len(table.Rules)).
		Int("skipped", len(table.Skipped)).
		Msg("Parsed rule table")

	return table, nil
}

// ParseString parses rules from string input.
func ParseString(src string, opts Options) (*Table, error) {
	return Parse(strings.NewReader(src), opts)
}
