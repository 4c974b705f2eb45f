package display

import (
	"testing"

	"github.com/arthur-debert/printdispatch/pkg/dispatcher"
	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioTable(t *testing.T) *rules.Table {
	t.Helper()
	table, err := rules.ParseString("\\.pdf$|LaserJet\nno separator\ninvoice.*|ReceiptPrinter\n", rules.DefaultOptions())
	require.NoError(t, err)
	return table
}

func outcome(file, printer, ext string, mode dispatcher.Mode, idx, line int) dispatcher.Outcome {
	return dispatcher.Outcome{Plan: dispatcher.Plan{
		Result: dispatcher.Result{
			Destination: printer, Extension: ext, Matched: idx >= 0, RuleIndex: idx, RuleLine: line,
		},
		Job:  dispatcher.PrintJob{SourcePath: file, Printer: printer},
		Mode: mode,
	}}
}

func TestNewJobReport(t *testing.T) {
	table := scenarioTable(t)

	t.Run("sent", func(t *testing.T) {
		r := NewJobReport(outcome("report.pdf", "LaserJet", "pdf", dispatcher.ModeExternal, 0, 1), table)
		assert.Equal(t, StatusSent, r.Status)
		assert.Equal(t, `\.pdf$`, r.Pattern)
		assert.Nil(t, r.Error)
		assert.Equal(t, "Print job sent report.pdf -> LaserJet via PDF helper\n  matched rule 1 (line 1) \\.pdf$\n",
			FormatJob(r, Plain))
	})

	t.Run("planned", func(t *testing.T) {
		o := outcome("invoice_2024.txt", "ReceiptPrinter", "txt", dispatcher.ModeRaw, 1, 3)
		o.DryRun = true
		r := NewJobReport(o, table)
		assert.Equal(t, StatusPlanned, r.Status)
		assert.Contains(t, FormatJob(r, Plain), "Would print invoice_2024.txt -> ReceiptPrinter via raw spooling")
	})

	t.Run("failed_with_platform_code", func(t *testing.T) {
		o := outcome("photo.png", dispatcher.DefaultSentinel, "", dispatcher.ModeRaw, -1, 0)
		o.Err = errors.New(errors.ErrPrinterOpenFailed, "failed to open printer").WithDetail(errors.DetailCode, int64(1801))
		r := NewJobReport(o, table)

		assert.Equal(t, StatusFailed, r.Status)
		require.NotNil(t, r.Error)
		assert.Equal(t, "PRINTER_OPEN_FAILED", r.Error.Code)
		assert.Equal(t, "opening the printer", r.Error.Stage)
		assert.Equal(t, 21, r.Error.ExitCode)
		require.NotNil(t, r.Error.Platform)
		assert.Equal(t, int64(1801), *r.Error.Platform)
		assert.Empty(t, r.Pattern)

		text := FormatJob(r, Plain)
		assert.Contains(t, text, "No rule matched photo.png")
		assert.Contains(t, text, "Print failed photo.png -> No Printer Selected")
		assert.Contains(t, text, "Error while opening the printer")
		assert.Contains(t, text, "(code 1801)")
	})

	t.Run("empty_file_name", func(t *testing.T) {
		r := NewJobReport(outcome("", dispatcher.DefaultSentinel, "", dispatcher.ModeRaw, -1, 0), table)
		assert.Contains(t, FormatJob(r, Plain), "(no file)")
	})
}

func TestNewRuleReport(t *testing.T) {
	r := NewRuleReport("/opt/pd/config.txt", scenarioTable(t))
	require.Len(t, r.Rules, 2)
	assert.Equal(t, RuleRow{Index: 1, Line: 3, Pattern: "invoice.*", Destination: "ReceiptPrinter"}, r.Rules[1])
	require.Len(t, r.Skipped, 1)
	assert.Equal(t, 2, r.Skipped[0].Line)

	text := FormatRules(r, Plain)
	assert.Contains(t, text, "Rules from /opt/pd/config.txt")
	assert.Contains(t, text, "2. invoice.* -> ReceiptPrinter (line 3)")
	assert.Contains(t, text, "Skipped lines")
	assert.Contains(t, text, `line 2: no separator "no separator"`)

	empty := NewRuleReport("x", nil)
	assert.NotNil(t, empty.Rules)
	assert.Contains(t, FormatRules(empty, Plain), "no rules")
}

func TestFormatPrinters(t *testing.T) {
	assert.Equal(t, "No printers found.\n", FormatPrinters(NewPrinterList(nil), Plain))
	assert.Equal(t, "Installed printers\n  LaserJet\n  Zebra\n",
		FormatPrinters(NewPrinterList([]string{"LaserJet", "Zebra"}), Plain))
}

func TestStage(t *testing.T) {
	assert.Equal(t, "writing to the printer", Stage(errors.ErrWriteFailed))
	assert.Equal(t, "launching the PDF helper", Stage(errors.ErrProcessLaunchFailed))
	assert.Equal(t, "processing the request", Stage(errors.ErrUnknown))
}
