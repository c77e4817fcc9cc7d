// Package cli implements the rtshim command line.
package cli

import (
	"github.com/go-i2p/go-rtshim/lib/config"
	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logger.GetGoI2PLogger()

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool

	// Config is resolved before any subcommand runs.
	Config config.RuntimeConfig
}

// NewRootCommand creates the root command for the rtshim CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rtshim",
		Short: "Runtime-support shim diagnostics",
		Long: `rtshim exercises the runtime-support shim: initialization state, the
reentrant critical-section guard and the assertion reporter.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.CfgFile = opts.ConfigFile
			if err := config.InitConfig(); err != nil {
				return err
			}
			opts.Config = config.NewRuntimeConfigFromViper()
			return config.Validate(opts.Config)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default $HOME/.rtshim/rtshim.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().String("assert-output", "", "assertion sink: stderr, stdout, discard, logger")
	cmd.PersistentFlags().String("platform", "", "critical-section platform: none, sigmask")
	_ = viper.BindPFlag("assert.output", cmd.PersistentFlags().Lookup("assert-output"))
	_ = viper.BindPFlag("critical.platform", cmd.PersistentFlags().Lookup("platform"))

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSelftestCommand(opts))
	cmd.AddCommand(NewInfoCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCommand().Execute()
}
