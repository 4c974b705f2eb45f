// Package cli implements the printdispatch command line.
package cli

import (
	"embed"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/arthur-debert/printdispatch/internal/version"
	"github.com/arthur-debert/printdispatch/pkg/cobrax/topics"
	"github.com/arthur-debert/printdispatch/pkg/errors"
	"github.com/arthur-debert/printdispatch/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed help
var helpFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd(deps Deps) *cobra.Command {
	initTemplateFormatting()

	a := &app{deps: deps.withDefaults()}

	rootCmd := &cobra.Command{
		Use:     "printdispatch [file]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgPrintExample,
		Version: version.Version,
		Args:    maxOneFile,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(a.flags.verbosity, cmd.ErrOrStderr())
			logging.LogCommand(log.Logger, cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, a, fileArg(args), a.flags.dryRun)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&a.flags.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&a.flags.rulesFile, "rules", "", MsgFlagRules)
	pf.StringVar(&a.flags.settings, "settings", "", MsgFlagSettings)
	pf.StringVar(&a.flags.home, "home", "", MsgFlagHome)
	pf.StringVar(&a.flags.format, "format", "auto", MsgFlagFormat)
	pf.DurationVar(&a.flags.timeout, "timeout", 0, MsgFlagTimeout)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "config", Title: "CONFIGURATION:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPrintCmd(a))
	rootCmd.AddCommand(newMatchCmd(a))
	rootCmd.AddCommand(newPrintersCmd(a))
	rootCmd.AddCommand(newRulesCmd(a))
	rootCmd.AddCommand(newSettingsCmd(a))
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	help, _ := fs.Sub(helpFS, "help")
	tm, err := topics.InitializeWithOptions(rootCmd, help, topics.Options{
		Renderer: topics.NewGlamourRenderer(!stdoutIsTerminal()),
	})
	if err == nil {
		rootCmd.AddCommand(newTopicsCmd(tm))
	}

	return rootCmd
}

// Execute runs the command line and returns the process exit status.
// Errors the commands have not rendered themselves, such as unknown
// flags, are printed here.
func Execute(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return errors.ExitOK
	}

	var shown reported
	if !stderrors.As(err, &shown) {
		if _, ok := err.(*errors.PrintError); !ok {
			err = errors.Wrap(err, errors.ErrInvalidInput, "invalid command line")
		}
		printError(rootCmd.ErrOrStderr(), err)
	}
	return errors.ExitCode(err)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}

func maxOneFile(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.Newf(errors.ErrInvalidInput, MsgErrTooManyFiles, len(args))
	}
	return nil
}

// fileArg returns the document argument; a missing one is the empty name
func fileArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
