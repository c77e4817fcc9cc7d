package cli

import (
	"fmt"

	"github.com/go-i2p/go-rtshim/lib/config"
	"github.com/go-i2p/go-rtshim/lib/shim"
	"github.com/go-i2p/go-rtshim/lib/util/signals"
	"github.com/go-i2p/logger"
	"github.com/spf13/cobra"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Initialize the library and re-initialize on SIGHUP",
		Long: `Initialize the process-wide library handle and keep running. Every SIGHUP
re-initializes it, clearing any open critical-section nesting. SIGINT or
SIGTERM stops the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := config.Build(rootOpts.Config,
				config.Streams{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()},
				config.BuildOptions{})
			if err != nil {
				return err
			}
			prev := shim.SetDefault(lib)
			defer shim.SetDefault(prev)

			report := func(status shim.Status) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", lib.ID(), status)
				log.WithFields(logger.Fields{
					"at":     "cli.watch",
					"id":     lib.ID(),
					"status": status,
				}).Info("library_status")
			}
			report(shim.Init())

			reinit := signals.RegisterReinitHandler(func() { report(shim.Init()) })
			shutdown := signals.RegisterShutdownHandler(signals.StopHandle)
			defer signals.Deregister(reinit)
			defer signals.Deregister(shutdown)

			signals.Start()
			signals.Handle()
			return nil
		},
	}
}
