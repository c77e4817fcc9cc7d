package cli

import (
	"fmt"

	"github.com/go-i2p/go-rtshim/lib/config"
	"github.com/go-i2p/go-rtshim/lib/shim"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	var writeConfig string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show build and configuration details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "module:   %s\n", shim.ModuleName)
			fmt.Fprintf(out, "revision: %s\n", shim.Revision)
			fmt.Fprintf(out, "tracing:  %t\n", shim.Tracing)
			if f := config.ConfigFileUsed(); f != "" {
				fmt.Fprintf(out, "config:   %s\n", f)
			} else {
				fmt.Fprintf(out, "config:   defaults\n")
			}

			data, err := yaml.Marshal(rootOpts.Config)
			if err != nil {
				return oops.Wrapf(err, "failed to encode config")
			}
			fmt.Fprintf(out, "\n%s", data)

			if writeConfig != "" {
				if err := config.WriteConfig(rootOpts.Config, writeConfig); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nwrote %s\n", writeConfig)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&writeConfig, "write-config", "", "write the effective configuration to this file")
	return cmd
}
