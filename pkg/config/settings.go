package config

import (
	"strings"
	"time"

	"github.com/arthur-debert/printdispatch/pkg/errors"
)

// Policy values accepted by the settings file
const (
	InvalidPatternAbort = "abort"
	InvalidPatternSkip  = "skip"

	ExtensionCaseInsensitive = "insensitive"
	ExtensionCaseSensitive   = "sensitive"
)

// Report formats accepted by output.format and --format
const (
	OutputAuto = "auto"
	OutputTerm = "term"
	OutputText = "text"
	OutputJSON = "json"
)

// outputAliases maps every accepted spelling to its canonical format
var outputAliases = map[string]string{
	"":         OutputAuto,
	OutputAuto: OutputAuto,
	OutputTerm: OutputTerm,
	"terminal": OutputTerm,
	OutputText: OutputText,
	"plain":    OutputText,
	OutputJSON: OutputJSON,
}

// NormalizeOutputFormat returns the canonical name for an output format,
// ignoring case. Unknown names fail with SETTINGS_INVALID.
func NormalizeOutputFormat(name string) (string, error) {
	if canonical, ok := outputAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return canonical, nil
	}
	return "", errors.Newf(errors.ErrSettingsInvalid,
		"output.format must be one of auto, term, text or json, got %q", name).
		WithDetail("format", name)
}

// Settings is the fully merged behaviour configuration
type Settings struct {
	Rules    RulesSettings    `koanf:"rules"`
	Dispatch DispatchSettings `koanf:"dispatch"`
	Spool    SpoolSettings    `koanf:"spool"`
	External ExternalSettings `koanf:"external"`
	Output   OutputSettings   `koanf:"output"`
}

// RulesSettings controls how the rule table is read
type RulesSettings struct {
	File            string `koanf:"file"`
	Separator       string `koanf:"separator"`
	InvalidPattern  string `koanf:"invalid_pattern"`
	TrimDestination bool   `koanf:"trim_destination"`
}

// DispatchSettings controls destination and delivery-mode selection
type DispatchSettings struct {
	Sentinel      string `koanf:"sentinel"`
	PDFExtension  string `koanf:"pdf_extension"`
	ExtensionCase string `koanf:"extension_case"`
}

// SpoolSettings describes the raw job handed to the spooler
type SpoolSettings struct {
	DocumentName string `koanf:"document_name"`
	Datatype     string `koanf:"datatype"`
}

// ExternalSettings configures the PDF helper process
type ExternalSettings struct {
	Helper        string        `koanf:"helper"`
	PreferExeDir  bool          `koanf:"prefer_exe_dir"`
	Timeout       time.Duration `koanf:"timeout"`
	CheckExitCode bool          `koanf:"check_exit_code"`
	Busy          BusySettings  `koanf:"busy"`
}

// BusySettings configures the flag file serialising helper runs
type BusySettings struct {
	Enabled    bool          `koanf:"enabled"`
	Flag       string        `koanf:"flag"`
	StaleAfter time.Duration `koanf:"stale_after"`
	Poll       time.Duration `koanf:"poll"`
}

// OutputSettings selects the report format
type OutputSettings struct {
	Format string `koanf:"format"`
}

// Validate rejects values the rest of the program cannot act on.
func (s *Settings) Validate() error {
	switch s.Rules.InvalidPattern {
	case InvalidPatternAbort, InvalidPatternSkip:
	default:
		return errors.Newf(errors.ErrSettingsInvalid,
			"rules.invalid_pattern must be %q or %q, got %q",
			InvalidPatternAbort, InvalidPatternSkip, s.Rules.InvalidPattern)
	}
	if len([]rune(s.Rules.Separator)) != 1 {
		return errors.Newf(errors.ErrSettingsInvalid,
			"rules.separator must be a single character, got %q", s.Rules.Separator)
	}
	switch s.Dispatch.ExtensionCase {
	case ExtensionCaseInsensitive, ExtensionCaseSensitive:
	default:
		return errors.Newf(errors.ErrSettingsInvalid,
			"dispatch.extension_case must be %q or %q, got %q",
			ExtensionCaseInsensitive, ExtensionCaseSensitive, s.Dispatch.ExtensionCase)
	}
	if s.Spool.Datatype == "" {
		return errors.New(errors.ErrSettingsInvalid, "spool.datatype must not be empty")
	}
	if s.External.Helper == "" {
		return errors.New(errors.ErrSettingsInvalid, "external.helper must not be empty")
	}
	if s.External.Timeout < 0 {
		return errors.Newf(errors.ErrSettingsInvalid,
			"external.timeout must not be negative, got %s", s.External.Timeout)
	}
	if s.External.Busy.Enabled {
		if s.External.Busy.Flag == "" {
			return errors.New(errors.ErrSettingsInvalid, "external.busy.flag must not be empty")
		}
		if s.External.Busy.Poll <= 0 {
			return errors.Newf(errors.ErrSettingsInvalid,
				"external.busy.poll must be positive, got %s", s.External.Busy.Poll)
		}
	}
	format, err := NormalizeOutputFormat(s.Output.Format)
	if err != nil {
		return err
	}
	s.Output.Format = format
	return nil
}
