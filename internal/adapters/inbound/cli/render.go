package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/report"
	"github.com/phalanx-sec/phalanx/internal/adapters/outbound/tui"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <report.json>",
		Short: "Render a previously written report in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := report.Load(args[0])
			if err != nil {
				return fmt.Errorf("loading report: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(rep))
			return nil
		},
	}
}
