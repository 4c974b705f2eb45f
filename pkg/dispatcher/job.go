package dispatcher

import (
	"context"

	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/arthur-debert/printdispatch/pkg/rules"
	"github.com/rs/zerolog"
)

// PrintJob is one document bound for one printer
type PrintJob struct {
	SourcePath string `json:"source_path"`
	Printer    string `json:"printer"`
}

// RawSender streams a file to a printer's spool queue
type RawSender interface {
	SendRaw(ctx context.Context, printerName, filePath string) error
}

// ExternalSender delegates delivery to the external helper
type ExternalSender interface {
	SendViaExternal(ctx context.Context, printerName, filePath string) error
}

// Plan is the decision for one invocation, before anything is sent
type Plan struct {
	Result
	Job  PrintJob `json:"job"`
	Mode Mode     `json:"mode"`
}

// Outcome is what one invocation did
type Outcome struct {
	Plan
	DryRun bool  `json:"dry_run"`
	Err    error `json:"-"`
}

// Succeeded reports whether delivery completed or was skipped by dry run
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Service wires the dispatcher to the two senders
type Service struct {
	dispatcher *Dispatcher
	policy     ModePolicy
	raw        RawSender
	external   ExternalSender
	logger     zerolog.Logger
}

// ServiceOptions configures a Service
type ServiceOptions struct {
	Sentinel string
	Policy   ModePolicy
	Raw      RawSender
	External ExternalSender
}

// NewService creates a delivery service
func NewService(opts ServiceOptions) *Service {
	return &Service{
		dispatcher: New(opts.Sentinel),
		policy:     opts.Policy,
		raw:        opts.Raw,
		external:   opts.External,
		logger:     logging.GetLogger("dispatcher.service"),
	}
}

// Plan evaluates filename without sending anything
func (s *Service) Plan(filename string, table *rules.Table) Plan {
	result := s.dispatcher.Dispatch(filename, table)
	return Plan{
		Result: result,
		Job: PrintJob{
			SourcePath: filename,
			Printer:    result.Destination,
		},
		Mode: s.policy.Select(result.Extension),
	}
}

// Run plans the job and hands it to exactly one sender. With dryRun the
// plan is returned without delivery. Errors are terminal; nothing is
// retried and no other printer or mode is tried.
func (s *Service) Run(ctx context.Context, filename string, table *rules.Table, dryRun bool) Outcome {
	plan := s.Plan(filename, table)
	outcome := Outcome{Plan: plan, DryRun: dryRun}

	s.logger.Info().
		Str("file", plan.Job.SourcePath).
		Str("printer", plan.Job.Printer).
		Str("mode", string(plan.Mode)).
		Bool("dryRun", dryRun).
		Msg("Dispatching print job")

	if dryRun {
		return outcome
	}

	done := logging.LogOperationStart(s.logger, "deliver-"+string(plan.Mode))
	defer done()

	switch plan.Mode {
	case ModeExternal:
		if s.external == nil {
			outcome.Err = errors.New(errors.ErrInternal, "no external sender configured")
			break
		}
		outcome.Err = s.external.SendViaExternal(ctx, plan.Job.Printer, plan.Job.SourcePath)
	default:
		if s.raw == nil {
			outcome.Err = errors.New(errors.ErrInternal, "no raw sender configured")
			break
		}
		outcome.Err = s.raw.SendRaw(ctx, plan.Job.Printer, plan.Job.SourcePath)
	}

	if outcome.Err != nil {
		s.logger.Error().
			Err(outcome.Err).
			Str("code", string(errors.GetErrorCode(outcome.Err))).
			Msg("Delivery failed")
	} else {
		s.logger.Info().Msg("Delivery completed")
	}
	return outcome
}
