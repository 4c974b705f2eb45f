package rules

import (
	"regexp"
	"strings"
)

// Rule maps a filename pattern to a destination printer
type Rule struct {
	// Pattern is the regular expression as written in the rule file
	Pattern string `json:"pattern"`

	// Destination is the printer name as written in the rule file
	Destination string `json:"destination"`

	// Line is the 1-based line number the rule was read from
	Line int `json:"line"`

	re *regexp.Regexp
}

// Matches reports whether the rule's pattern occurs anywhere in name,
// ignoring case.
func (r Rule) Matches(name string) bool {
	if r.re == nil {
		return false
	}
	return r.re.MatchString(name)
}

// SkipReason explains why a line contributed no rule
type SkipReason string

const (
	SkipNoSeparator    SkipReason = "no separator"
	SkipInvalidPattern SkipReason = "invalid pattern"
)

// SkippedLine records a non-empty line that was not turned into a rule
type SkippedLine struct {
	Line   int        `json:"line"`
	Text   string     `json:"text"`
	Reason SkipReason `json:"reason"`
	Err    error      `json:"-"`
}

// Table is the ordered rule list for one invocation. It is read-only once
// loaded.
type Table struct {
	Rules   []Rule        `json:"rules"`
	Skipped []SkippedLine `json:"skipped,omitempty"`

	separator string
}

// Len returns the number of usable rules
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rules)
}

// Match returns the first rule whose pattern matches name and its index.
// The index is -1 when nothing matched.
func (t *Table) Match(name string) (Rule, int, bool) {
	if t == nil {
		return Rule{}, -1, false
	}
	for i, rule := range t.Rules {
		if rule.Matches(name) {
			return rule, i, true
		}
	}
	return Rule{}, -1, false
}

// String renders the usable rules back into rule file lines. Skipped
// lines are never included.
func (t *Table) String() string {
	if t == nil {
		return ""
	}
	sep := t.separator
	if sep == "" {
		sep = DefaultSeparator
	}
	var b strings.Builder
	for _, rule := range t.Rules {
		b.WriteString(rule.Pattern)
		b.WriteString(sep)
		b.WriteString(rule.Destination)
		b.WriteByte('\n')
	}
	return b.String()
}
