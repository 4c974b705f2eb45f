package cli

import (
	"github.com/arthur-debert/printdispatch/pkg/printers"
	"github.com/arthur-debert/printdispatch/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newPrintersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "printers",
		Short:   MsgPrintersShort,
		Long:    MsgPrintersLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// settings only matter for the output format here; a broken
			// settings file should not hide the printer list
			if err := a.load(cmd); err != nil {
				a.settings = nil
			}
			names := printers.New(a.deps.Printers).List(cmd.Context())
			r, err := a.renderer(cmd.OutOrStdout())
			if err != nil {
				return a.fail(cmd, err)
			}
			return r.RenderResult(display.NewPrinterList(names))
		},
	}
}
