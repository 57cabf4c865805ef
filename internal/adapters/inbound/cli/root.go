package cli

import "github.com/spf13/cobra"

var (
	version = "0.1.0"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "phalanx",
		Short:         "Unified PHP SAST orchestrator",
		Long:          "Phalanx runs Psalm, psecio/parse and ProgPilot against a PHP codebase in Docker and merges their output into one normalized report.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
