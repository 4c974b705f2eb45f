package display

import (
	"fmt"
	"strings"
)

// Styler decorates text with a named style. Plain output passes text
// through unchanged.
type Styler func(style, text string) string

// Plain is the Styler for unstyled output
func Plain(_ string, text string) string { return text }

// ModeLabel is the human name of a delivery mode
func ModeLabel(mode string) string {
	switch mode {
	case "external":
		return "PDF helper"
	case "raw":
		return "raw spooling"
	}
	return mode
}

// FormatJob renders the outcome message of one invocation
func FormatJob(r *JobReport, s Styler) string {
	var b strings.Builder

	if !r.Matched {
		fmt.Fprintf(&b, "%s %s\n", s("Muted", "No rule matched"), r.File)
	}

	switch r.Status {
	case StatusPlanned:
		fmt.Fprintf(&b, "%s %s -> %s via %s\n",
			s("Planned", "Would print"), displayFile(r.File), s("Printer", r.Printer), ModeLabel(r.Mode))
	case StatusFailed:
		fmt.Fprintf(&b, "%s %s -> %s via %s\n",
			s("Error", "Print failed"), displayFile(r.File), s("Printer", r.Printer), ModeLabel(r.Mode))
	default:
		fmt.Fprintf(&b, "%s %s -> %s via %s\n",
			s("Success", "Print job sent"), displayFile(r.File), s("Printer", r.Printer), ModeLabel(r.Mode))
	}

	if r.Matched {
		fmt.Fprintf(&b, "  %s rule %d (line %d) %s\n",
			s("Muted", "matched"), r.RuleIndex+1, r.RuleLine, s("Pattern", r.Pattern))
	}
	if r.Error != nil {
		b.WriteString("  " + FormatError(r.Error, s))
	}
	return b.String()
}

// FormatError renders a failure naming the stage and platform code
func FormatError(e *ErrorReport, s Styler) string {
	line := fmt.Sprintf("%s while %s: %s", s("Error", "Error"), e.Stage, e.Message)
	if e.Platform != nil {
		line += " " + s("Code", fmt.Sprintf("(code %d)", *e.Platform))
	}
	return line + "\n"
}

// FormatPrinters renders the printer list one name per line
func FormatPrinters(p *PrinterList, s Styler) string {
	if len(p.Printers) == 0 {
		return s("Muted", "No printers found.") + "\n"
	}
	var b strings.Builder
	b.WriteString(s("Title", "Installed printers") + "\n")
	for _, name := range p.Printers {
		fmt.Fprintf(&b, "  %s\n", s("Printer", name))
	}
	return b.String()
}

// FormatRules renders a rule table and its skipped lines
func FormatRules(r *RuleReport, s Styler) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s("Title", "Rules from"), r.File)
	if len(r.Rules) == 0 {
		b.WriteString("  " + s("Muted", "no rules") + "\n")
	}
	for _, row := range r.Rules {
		fmt.Fprintf(&b, "  %d. %s -> %s %s\n",
			row.Index+1, s("Pattern", row.Pattern), s("Printer", row.Destination),
			s("Muted", fmt.Sprintf("(line %d)", row.Line)))
	}
	b.WriteString(FormatSkipped(r.Skipped, s))
	return b.String()
}

// FormatSkipped renders the rule file lines that produced no rule
func FormatSkipped(rows []SkippedRow, s Styler) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(s("Title", "Skipped lines") + "\n")
	for _, row := range rows {
		reason := row.Reason
		if row.Error != "" {
			reason += ": " + row.Error
		}
		fmt.Fprintf(&b, "  line %d: %s %s\n", row.Line, reason, s("Muted", fmt.Sprintf("%q", row.Text)))
	}
	return b.String()
}

func displayFile(file string) string {
	if file == "" {
		return "(no file)"
	}
	return file
}
