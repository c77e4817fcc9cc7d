//go:build windows

package signals

import (
	"os"
	"os/signal"
)

func notify() {
	signal.Notify(sigChan, os.Interrupt)
}

func stopNotify() { signal.Stop(sigChan) }

// Handle subscribes with Start and dispatches signals until StopHandle is
// called. Windows has no SIGHUP, so re-init handlers never run here.
func Handle() {
	Start()
	for sig := range sigChan {
		if sig == os.Interrupt {
			handleShutdown()
		}
	}
}
