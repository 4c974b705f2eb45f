package config

import (
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// ToMap returns the settings as nested maps keyed like the settings file,
// with durations rendered as strings.
func (s *Settings) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"rules": map[string]interface{}{
			"file":             s.Rules.File,
			"separator":        s.Rules.Separator,
			"invalid_pattern":  s.Rules.InvalidPattern,
			"trim_destination": s.Rules.TrimDestination,
		},
		"dispatch": map[string]interface{}{
			"sentinel":       s.Dispatch.Sentinel,
			"pdf_extension":  s.Dispatch.PDFExtension,
			"extension_case": s.Dispatch.ExtensionCase,
		},
		"spool": map[string]interface{}{
			"document_name": s.Spool.DocumentName,
			"datatype":      s.Spool.Datatype,
		},
		"external": map[string]interface{}{
			"helper":          s.External.Helper,
			"prefer_exe_dir":  s.External.PreferExeDir,
			"timeout":         durationString(s.External.Timeout),
			"check_exit_code": s.External.CheckExitCode,
			"busy": map[string]interface{}{
				"enabled":     s.External.Busy.Enabled,
				"flag":        s.External.Busy.Flag,
				"stale_after": durationString(s.External.Busy.StaleAfter),
				"poll":        durationString(s.External.Busy.Poll),
			},
		},
		"output": map[string]interface{}{
			"format": s.Output.Format,
		},
	}
}

// RenderTOML renders the settings in the settings file format.
func (s *Settings) RenderTOML() ([]byte, error) {
	return toml.Marshal(s.ToMap())
}

func durationString(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	return d.String()
}
