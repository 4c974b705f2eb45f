package dispatcher

import (
	"context"
	"testing"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRaw struct {
	mock.Mock
}

func (m *mockRaw) SendRaw(ctx context.Context, printerName, filePath string) error {
	args := m.Called(ctx, printerName, filePath)
	return args.Error(0)
}

type mockExternal struct {
	mock.Mock
}

func (m *mockExternal) SendViaExternal(ctx context.Context, printerName, filePath string) error {
	args := m.Called(ctx, printerName, filePath)
	return args.Error(0)
}

func newTestService(policy ModePolicy) (*Service, *mockRaw, *mockExternal) {
	raw := &mockRaw{}
	ext := &mockExternal{}
	svc := NewService(ServiceOptions{
		Policy:   policy,
		Raw:      raw,
		External: ext,
	})
	return svc, raw, ext
}

const scenarioRules = "\\.pdf$|LaserJet\ninvoice.*|ReceiptPrinter\n"

func TestServiceRun(t *testing.T) {
	ctx := context.Background()

	t.Run("pdf_uses_external_sender", func(t *testing.T) {
		svc, raw, ext := newTestService(DefaultModePolicy())
		ext.On("SendViaExternal", ctx, "LaserJet", "report.pdf").Return(nil).Once()

		out := svc.Run(ctx, "report.pdf", mustTable(t, scenarioRules), false)
		require.NoError(t, out.Err)
		assert.Equal(t, ModeExternal, out.Mode)
		assert.Equal(t, PrintJob{SourcePath: "report.pdf", Printer: "LaserJet"}, out.Job)
		assert.Equal(t, "pdf", out.Extension)

		ext.AssertExpectations(t)
		raw.AssertNotCalled(t, "SendRaw", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("text_uses_raw_sender", func(t *testing.T) {
		svc, raw, ext := newTestService(DefaultModePolicy())
		raw.On("SendRaw", ctx, "ReceiptPrinter", "invoice_2024.txt").Return(nil).Once()

		out := svc.Run(ctx, "invoice_2024.txt", mustTable(t, scenarioRules), false)
		require.NoError(t, out.Err)
		assert.Equal(t, ModeRaw, out.Mode)
		assert.Equal(t, "txt", out.Extension)
		assert.True(t, out.Succeeded())

		raw.AssertExpectations(t)
		ext.AssertNotCalled(t, "SendViaExternal", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uppercase_pdf_insensitive", func(t *testing.T) {
		svc, _, ext := newTestService(DefaultModePolicy())
		ext.On("SendViaExternal", ctx, "LaserJet", "REPORT.PDF").Return(nil).Once()

		out := svc.Run(ctx, "REPORT.PDF", mustTable(t, scenarioRules), false)
		require.NoError(t, out.Err)
		assert.Equal(t, ModeExternal, out.Mode)
		ext.AssertExpectations(t)
	})

	t.Run("uppercase_pdf_sensitive", func(t *testing.T) {
		svc, raw, _ := newTestService(ModePolicy{PDFExtension: "pdf", CaseSensitive: true})
		raw.On("SendRaw", ctx, "LaserJet", "REPORT.PDF").Return(nil).Once()

		out := svc.Run(ctx, "REPORT.PDF", mustTable(t, scenarioRules), false)
		require.NoError(t, out.Err)
		assert.Equal(t, ModeRaw, out.Mode)
		raw.AssertExpectations(t)
	})

	t.Run("no_match_sends_raw_to_sentinel", func(t *testing.T) {
		svc, raw, _ := newTestService(DefaultModePolicy())
		openErr := errors.New(errors.ErrPrinterOpenFailed, "open failed").WithDetail(errors.DetailCode, 1801)
		raw.On("SendRaw", ctx, DefaultSentinel, "photo.pdf").Return(openErr).Once()

		out := svc.Run(ctx, "photo.pdf", mustTable(t, "^invoice|R\n"), false)
		assert.Equal(t, ModeRaw, out.Mode)
		assert.False(t, out.Matched)
		assert.True(t, errors.IsErrorCode(out.Err, errors.ErrPrinterOpenFailed))
		assert.False(t, out.Succeeded())
		raw.AssertExpectations(t)
	})

	t.Run("sender_error_is_returned_once", func(t *testing.T) {
		svc, raw, ext := newTestService(DefaultModePolicy())
		helperErr := errors.New(errors.ErrHelperFailed, "helper exited 3")
		ext.On("SendViaExternal", ctx, "LaserJet", "a.pdf").Return(helperErr).Once()

		out := svc.Run(ctx, "a.pdf", mustTable(t, scenarioRules), false)
		assert.Equal(t, helperErr, out.Err)
		ext.AssertNumberOfCalls(t, "SendViaExternal", 1)
		raw.AssertNotCalled(t, "SendRaw", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("dry_run_sends_nothing", func(t *testing.T) {
		svc, raw, ext := newTestService(DefaultModePolicy())

		out := svc.Run(ctx, "report.pdf", mustTable(t, scenarioRules), true)
		require.NoError(t, out.Err)
		assert.True(t, out.DryRun)
		assert.Equal(t, "LaserJet", out.Job.Printer)
		raw.AssertNotCalled(t, "SendRaw", mock.Anything, mock.Anything, mock.Anything)
		ext.AssertNotCalled(t, "SendViaExternal", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing_sender_is_internal_error", func(t *testing.T) {
		svc := NewService(ServiceOptions{Policy: DefaultModePolicy()})
		out := svc.Run(ctx, "a.txt", mustTable(t, scenarioRules), false)
		assert.True(t, errors.IsErrorCode(out.Err, errors.ErrInternal))
	})
}

func TestServicePlan(t *testing.T) {
	svc, _, _ := newTestService(DefaultModePolicy())
	plan := svc.Plan("invoice.pdf", mustTable(t, scenarioRules))
	assert.Equal(t, "LaserJet", plan.Destination)
	assert.Equal(t, ModeExternal, plan.Mode)
	assert.Equal(t, 0, plan.RuleIndex)
}
