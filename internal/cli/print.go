package cli

import (
	"github.com/arthur-debert/printdispatch/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newPrintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "print [file]",
		Short:   MsgPrintShort,
		Long:    MsgPrintLong,
		Example: MsgPrintExample,
		GroupID: "core",
		Args:    maxOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, a, fileArg(args), a.flags.dryRun)
		},
	}
}

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "match <file>",
		Short:   MsgMatchShort,
		Long:    MsgMatchLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd, a, args[0], true)
		},
	}
}

// runPrint is one invocation: load the rules, pick the printer and mode,
// deliver through exactly one sender and report one outcome.
func runPrint(cmd *cobra.Command, a *app, file string, dryRun bool) error {
	if err := a.load(cmd); err != nil {
		return a.fail(cmd, err)
	}
	table, err := a.loadRules()
	if err != nil {
		return a.fail(cmd, err)
	}

	ctx := cmd.Context()
	a.logPrinters(ctx)

	outcome := a.service().Run(ctx, file, table, dryRun)

	report := display.NewJobReport(outcome, table)
	out := cmd.OutOrStdout()
	if outcome.Err != nil {
		out = cmd.ErrOrStderr()
	}
	r, err := a.renderer(out)
	if err != nil {
		return a.fail(cmd, err)
	}
	if err := r.RenderResult(report); err != nil {
		return err
	}
	if outcome.Err != nil {
		return reported{outcome.Err}
	}
	return nil
}
