package cli

import (
	"fmt"

	"github.com/go-i2p/go-rtshim/lib/config"
	"github.com/go-i2p/go-rtshim/lib/script"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run scenario files against a fresh library handle",
		Long: `Run one or more YAML scenario files. Each scenario gets its own library
handle built from the configuration. The command fails if any expectation
in any scenario is not met.

Example:
  rtshim run ./nested.yaml
  rtshim run --assert-output discard ./scenarios/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios := make([]*script.Scenario, 0, len(args))
			for _, path := range args {
				sc, err := script.LoadScenario(path)
				if err != nil {
					return oops.Wrapf(err, "scenario %s", path)
				}
				scenarios = append(scenarios, sc)
			}
			return runScenarios(cmd, rootOpts, scenarios)
		},
	}
}

func runScenarios(cmd *cobra.Command, opts *RootOptions, scenarios []*script.Scenario) error {
	streams := config.Streams{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	results := make([]*script.Result, 0, len(scenarios))
	for _, sc := range scenarios {
		res, err := script.Run(sc, opts.Config, streams)
		if err != nil {
			return err
		}
		results = append(results, res)
		fmt.Fprintln(cmd.OutOrStdout(), script.Render(res, opts.Verbose))
	}
	fmt.Fprintln(cmd.OutOrStdout(), script.Summary(results))

	for _, r := range results {
		if !r.Passed() {
			return oops.Errorf("scenario %s failed", r.Name)
		}
	}
	return nil
}
