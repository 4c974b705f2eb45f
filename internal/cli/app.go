package cli

import (
	"context"
	"io"
	"time"

	"github.com/arthur-debert/printdispatch/pkg/config"
	"github.com/arthur-debert/printdispatch/pkg/dispatcher"
	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/external"
	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/arthur-debert/printdispatch/pkg/paths"
	"github.com/arthur-debert/printdispatch/pkg/printers"
	"github.com/arthur-debert/printdispatch/pkg/rules"
	"github.com/arthur-debert/printdispatch/pkg/spool"
	"github.com/arthur-debert/printdispatch/pkg/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Deps are the collaborators that touch the host. Nil fields use the
// platform implementation.
type Deps struct {
	// Spool reaches the print spooler
	Spool spool.API
	// Helper runs the PDF helper; nil resolves external.helper
	Helper external.ExternalPrinter
	// Printers enumerates installed printers
	Printers printers.Source
	// Fs holds documents, the rule file, settings files, the helper
	// and the busy flag
	Fs afero.Fs
}

func (d Deps) withDefaults() Deps {
	if d.Spool == nil {
		d.Spool = spool.NewPlatformAPI()
	}
	if d.Printers == nil {
		d.Printers = printers.NewPlatformSource()
	}
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	return d
}

// flags are the global command line options
type flags struct {
	verbosity int
	dryRun    bool
	rulesFile string
	settings  string
	home      string
	format    string
	timeout   time.Duration
}

// app is the per-invocation state shared by commands
type app struct {
	deps  Deps
	flags flags

	paths    paths.Paths
	settings *config.Settings
}

// load resolves paths and settings. Flags set on the command line become
// the last settings layer.
func (a *app) load(cmd *cobra.Command) error {
	p, err := paths.New(paths.Options{
		Root:         a.flags.home,
		SettingsFile: a.flags.settings,
		Fs:           a.deps.Fs,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, MsgErrInitPaths)
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("format") {
		overrides["output.format"] = a.flags.format
	}
	if cmd.Flags().Changed("timeout") {
		overrides["external.timeout"] = a.flags.timeout.String()
	}
	if cmd.Flags().Changed("rules") {
		overrides["rules.file"] = a.flags.rulesFile
	}

	s, err := config.Load(config.LoadOptions{File: p.SettingsFile(), Fs: a.deps.Fs, Overrides: overrides})
	if err != nil {
		return err
	}

	a.paths = paths.WithRulesFile(p, s.Rules.File)
	a.settings = s

	logger := logging.GetLogger("cli")
	logger.Debug().
		Str("root", a.paths.Root()).
		Str("rules", a.paths.RulesFile()).
		Str("settings", a.paths.SettingsFile()).
		Msg("Resolved resources")
	return nil
}

func (a *app) ruleOptions() (rules.Options, error) {
	policy, err := rules.ParsePolicy(a.settings.Rules.InvalidPattern)
	if err != nil {
		return rules.Options{}, err
	}
	return rules.Options{
		Separator:       a.settings.Rules.Separator,
		InvalidPattern:  policy,
		TrimDestination: a.settings.Rules.TrimDestination,
	}, nil
}

// loadRules reads the rule table once for this invocation
func (a *app) loadRules() (*rules.Table, error) {
	opts, err := a.ruleOptions()
	if err != nil {
		return nil, err
	}
	table, err := rules.LoadFile(a.deps.Fs, a.paths.RulesFile(), opts)
	if err != nil {
		return nil, err
	}
	if len(table.Skipped) > 0 {
		logger := logging.GetLogger("cli")
		logger.Warn().
			Int("skipped", len(table.Skipped)).
			Str("file", a.paths.RulesFile()).
			Msgf(MsgSkippedWarning, len(table.Skipped), "printdispatch")
	}
	return table, nil
}

func (a *app) modePolicy() dispatcher.ModePolicy {
	return dispatcher.ModePolicy{
		PDFExtension:  a.settings.Dispatch.PDFExtension,
		CaseSensitive: a.settings.Dispatch.ExtensionCase == config.ExtensionCaseSensitive,
	}
}

// service wires the senders described by the settings
func (a *app) service() *dispatcher.Service {
	s := a.settings

	raw := spool.NewSender(a.deps.Spool, a.deps.Fs, spool.DocInfo{
		Name:     s.Spool.DocumentName,
		Datatype: s.Spool.Datatype,
	})

	helper := a.deps.Helper
	if helper == nil {
		helper = external.NewHelperPrinter(
			external.ResolveHelper(a.deps.Fs, s.External.Helper, a.paths.Root(), s.External.PreferExeDir))
	}
	opts := external.SenderOptions{
		Timeout:       s.External.Timeout,
		CheckExitCode: s.External.CheckExitCode,
	}
	if s.External.Busy.Enabled {
		opts.Busy = external.NewBusyFlag(a.deps.Fs, a.paths.Resolve(s.External.Busy.Flag),
			s.External.Busy.StaleAfter, s.External.Busy.Poll)
	}

	return dispatcher.NewService(dispatcher.ServiceOptions{
		Sentinel: s.Dispatch.Sentinel,
		Policy:   a.modePolicy(),
		Raw:      raw,
		External: external.NewSender(helper, opts),
	})
}

// format returns the output format, falling back to auto
func (a *app) format() ui.Format {
	name := a.flags.format
	if a.settings != nil {
		name = a.settings.Output.Format
	}
	f, err := ui.ParseFormat(name)
	if err != nil {
		return ui.FormatAuto
	}
	return f
}

func (a *app) renderer(w io.Writer) (ui.Renderer, error) {
	r, err := ui.NewRenderer(a.format(), w)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, MsgErrRenderer)
	}
	return r, nil
}

// fail renders err on the command's error stream and returns it so the
// exit status reflects it
func (a *app) fail(cmd *cobra.Command, err error) error {
	if r, rerr := a.renderer(cmd.ErrOrStderr()); rerr == nil {
		_ = r.RenderError(err)
	}
	return reported{err}
}

// logPrinters lists installed printers at debug level
func (a *app) logPrinters(ctx context.Context) {
	if a.flags.verbosity < 2 {
		return
	}
	names := printers.New(a.deps.Printers).List(ctx)
	logger := logging.GetLogger("cli")
	logger.Debug().Strs("printers", names).Msg("Installed printers")
}

// reported marks an error that has already been shown to the user
type reported struct {
	error
}

func (r reported) Unwrap() error { return r.error }
