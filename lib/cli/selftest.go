package cli

import (
	"github.com/go-i2p/go-rtshim/lib/script"
	"github.com/spf13/cobra"
)

// NewSelftestCommand creates the selftest command.
func NewSelftestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the built-in scenarios",
		Long: `Run the scenarios compiled into the binary. They cover nested
protection, unprotected release, re-initialization and non-fatal assertions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := script.Builtin()
			if err != nil {
				return err
			}
			return runScenarios(cmd, rootOpts, scenarios)
		},
	}
}
