package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Route documents to printers by file name"
	MsgPrintShort      = "Send a document to the printer its rules select"
	MsgMatchShort      = "Show which printer and mode a file would use"
	MsgRulesShort      = "List the rules loaded from the rule file"
	MsgPrintersShort   = "List installed printers"
	MsgSettingsShort   = "Show the merged settings"
	MsgTopicsShort     = "Display available documentation topics"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"

	// Status messages
	MsgSettingsWritten = "Wrote settings to %s\n"
	MsgSettingsExists  = "settings file %s already exists, use --force to replace it"
	MsgNoTopics        = "No help topics available."
	MsgTopicsHeader    = "Available help topics:"
	MsgTopicsFooter    = "\nUse '%s help <topic>' to read about a specific topic.\n"
	MsgSkippedWarning  = "%d rule file line(s) were skipped; run '%s rules' for details"

	// Version output
	MsgVersionFormat = "printdispatch version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Error messages
	MsgErrInitPaths    = "failed to resolve resource paths"
	MsgErrRenderer     = "failed to create output renderer"
	MsgErrTooManyFiles = "expected at most one file, got %d"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Show the delivery decision without printing"
	MsgFlagRules    = "Rule file (default config.txt beside the executable)"
	MsgFlagSettings = "Settings file (TOML or YAML)"
	MsgFlagHome     = "Directory relative resources resolve against (default: executable directory)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagTimeout  = "Give up on the PDF helper after this long (0 waits forever)"
	MsgFlagWrite    = "Write the settings file beside the executable instead of printing it"
	MsgFlagForce    = "Replace an existing settings file"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/print-long.txt
	msgPrintLongRaw string
	MsgPrintLong    = strings.TrimSpace(msgPrintLongRaw)

	//go:embed msgs/print-example.txt
	msgPrintExampleRaw string
	MsgPrintExample    = strings.TrimRight(msgPrintExampleRaw, "\n")

	//go:embed msgs/match-long.txt
	msgMatchLongRaw string
	MsgMatchLong    = strings.TrimSpace(msgMatchLongRaw)

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/printers-long.txt
	msgPrintersLongRaw string
	MsgPrintersLong    = strings.TrimSpace(msgPrintersLongRaw)

	//go:embed msgs/settings-long.txt
	msgSettingsLongRaw string
	MsgSettingsLong    = strings.TrimSpace(msgSettingsLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
