//go:build !windows

package signals

import (
	"os/signal"
	"syscall"
)

func notify() {
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
}

func stopNotify() { signal.Stop(sigChan) }

// Handle subscribes with Start and dispatches signals until StopHandle is
// called.
func Handle() {
	Start()
	for sig := range sigChan {
		switch sig {
		case syscall.SIGHUP:
			handleReinit()
		case syscall.SIGINT, syscall.SIGTERM:
			handleShutdown()
		}
	}
}
