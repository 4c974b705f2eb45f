// Package display holds the view models every output format renders.
// Commands convert their domain results into these types once; the
// terminal, text and JSON renderers only ever see display values.
package display

import (
	"github.com/arthur-debert/printdispatch/pkg/dispatcher"
	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/rules"
)

// Job statuses
const (
	StatusSent    = "sent"
	StatusPlanned = "planned"
	StatusFailed  = "failed"
)

// JobReport is the one outcome message of a print or match invocation
type JobReport struct {
	File      string       `json:"file"`
	Printer   string       `json:"printer"`
	Extension string       `json:"extension"`
	Mode      string       `json:"mode"`
	Matched   bool         `json:"matched"`
	RuleIndex int          `json:"ruleIndex"`
	RuleLine  int          `json:"ruleLine,omitempty"`
	Pattern   string       `json:"pattern,omitempty"`
	DryRun    bool         `json:"dryRun"`
	Status    string       `json:"status"`
	Error     *ErrorReport `json:"error,omitempty"`
}

// ErrorReport describes a failure by stage and platform code
type ErrorReport struct {
	Code     string `json:"code"`
	Stage    string `json:"stage"`
	Message  string `json:"message"`
	Platform *int64 `json:"platformCode,omitempty"`
	ExitCode int    `json:"exitCode"`
}

// PrinterList is the output of printer enumeration
type PrinterList struct {
	Printers []string `json:"printers"`
}

// RuleRow is one loaded rule
type RuleRow struct {
	Index       int    `json:"index"`
	Line        int    `json:"line"`
	Pattern     string `json:"pattern"`
	Destination string `json:"destination"`
}

// SkippedRow is one rule file line that produced no rule
type SkippedRow struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
	Error  string `json:"error,omitempty"`
}

// RuleReport lists a loaded rule table
type RuleReport struct {
	File    string       `json:"file"`
	Rules   []RuleRow    `json:"rules"`
	Skipped []SkippedRow `json:"skipped"`
}

// NewJobReport converts a dispatch outcome
func NewJobReport(out dispatcher.Outcome, table *rules.Table) *JobReport {
	r := &JobReport{
		File:      out.Job.SourcePath,
		Printer:   out.Job.Printer,
		Extension: out.Extension,
		Mode:      string(out.Mode),
		Matched:   out.Matched,
		RuleIndex: out.RuleIndex,
		RuleLine:  out.RuleLine,
		DryRun:    out.DryRun,
		Status:    StatusSent,
	}
	if out.Matched && table != nil && out.RuleIndex < table.Len() {
		r.Pattern = table.Rules[out.RuleIndex].Pattern
	}
	switch {
	case out.Err != nil:
		r.Status = StatusFailed
		r.Error = NewErrorReport(out.Err)
	case out.DryRun:
		r.Status = StatusPlanned
	}
	return r
}

// NewErrorReport describes err for display
func NewErrorReport(err error) *ErrorReport {
	code := errors.GetErrorCode(err)
	r := &ErrorReport{
		Code:     string(code),
		Stage:    Stage(code),
		Message:  err.Error(),
		ExitCode: errors.ExitCode(err),
	}
	if pc, ok := errors.PlatformCode(err); ok {
		r.Platform = &pc
	}
	return r
}

// NewPrinterList wraps enumerated printer names
func NewPrinterList(names []string) *PrinterList {
	if names == nil {
		names = []string{}
	}
	return &PrinterList{Printers: names}
}

// NewRuleReport converts a loaded rule table
func NewRuleReport(file string, table *rules.Table) *RuleReport {
	r := &RuleReport{File: file, Rules: []RuleRow{}, Skipped: []SkippedRow{}}
	if table == nil {
		return r
	}
	for i, rule := range table.Rules {
		r.Rules = append(r.Rules, RuleRow{
			Index:       i,
			Line:        rule.Line,
			Pattern:     rule.Pattern,
			Destination: rule.Destination,
		})
	}
	for _, s := range table.Skipped {
		row := SkippedRow{Line: s.Line, Text: s.Text, Reason: string(s.Reason)}
		if s.Err != nil {
			row.Error = s.Err.Error()
		}
		r.Skipped = append(r.Skipped, row)
	}
	return r
}

var stages = map[errors.ErrorCode]string{
	errors.ErrConfigUnavailable:   "reading the rule table",
	errors.ErrInvalidPattern:      "compiling a rule pattern",
	errors.ErrSettingsInvalid:     "loading settings",
	errors.ErrFileUnreadable:      "reading the document",
	errors.ErrPrinterOpenFailed:   "opening the printer",
	errors.ErrJobStartFailed:      "starting the print job",
	errors.ErrPageStartFailed:     "starting the page",
	errors.ErrWriteFailed:         "writing to the printer",
	errors.ErrPageEndFailed:       "ending the page",
	errors.ErrJobEndFailed:        "ending the print job",
	errors.ErrProcessLaunchFailed: "launching the PDF helper",
	errors.ErrHelperFailed:        "running the PDF helper",
	errors.ErrHelperTimeout:       "waiting for the PDF helper",
	errors.ErrPrinterBusy:         "waiting for another print to finish",
	errors.ErrInvalidInput:        "reading the command line",
}

// Stage names the step that failed with code
func Stage(code errors.ErrorCode) string {
	if s, ok := stages[code]; ok {
		return s
	}
	return "processing the request"
}
