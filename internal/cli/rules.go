package cli

import (
	"github.com/arthur-debert/printdispatch/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return a.fail(cmd, err)
			}
			table, err := a.loadRules()
			if err != nil {
				return a.fail(cmd, err)
			}
			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return a.fail(cmd, err)
			}
			return r.RenderResult(display.NewRuleReport(a.paths.RulesFile(), table))
		},
	}
}
