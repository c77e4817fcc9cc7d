// Package signals dispatches process signals to registered handlers: SIGHUP
// re-initializes, SIGINT and SIGTERM shut down.
package signals

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// sigChan is buffered to avoid missing signals delivered while no receiver is ready.
var sigChan = make(chan os.Signal, 1)

// Handler is a function called when a signal is received.
type Handler func()

// HandlerID identifies a registration for later removal.
type HandlerID int

type registeredHandler struct {
	id HandlerID
	fn Handler
}

var (
	mu        sync.RWMutex
	reinits   []registeredHandler
	shutdowns []registeredHandler
	nextID    HandlerID
	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
)

// Start subscribes to the process signals Handle dispatches. Until it is
// called the process keeps the default signal behaviour. Safe to call more
// than once.
func Start() {
	startOnce.Do(func() {
		notify()
		started.Store(true)
	})
}

// Started reports whether Start has subscribed to signals.
func Started() bool {
	return started.Load()
}

// RegisterReinitHandler registers f to run on SIGHUP. Nil handlers are
// ignored and return -1.
func RegisterReinitHandler(f Handler) HandlerID {
	return register(&reinits, f)
}

// RegisterShutdownHandler registers f to run on SIGINT or SIGTERM. Nil
// handlers are ignored and return -1.
func RegisterShutdownHandler(f Handler) HandlerID {
	return register(&shutdowns, f)
}

// Deregister removes a handler registered with either function.
func Deregister(id HandlerID) {
	mu.Lock()
	defer mu.Unlock()
	reinits = remove(reinits, id)
	shutdowns = remove(shutdowns, id)
}

func register(list *[]registeredHandler, f Handler) HandlerID {
	if f == nil {
		return -1
	}
	mu.Lock()
	defer mu.Unlock()
	id := nextID
	nextID++
	*list = append(*list, registeredHandler{id: id, fn: f})
	return id
}

func remove(list []registeredHandler, id HandlerID) []registeredHandler {
	for i, h := range list {
		if h.id == id {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func handleReinit()   { run("reinit", &reinits) }
func handleShutdown() { run("shutdown", &shutdowns) }

// run calls a snapshot of the handlers so a handler may (de)register others.
func run(kind string, list *[]registeredHandler) {
	mu.RLock()
	snapshot := make([]registeredHandler, len(*list))
	copy(snapshot, *list)
	mu.RUnlock()

	for _, h := range snapshot {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(logger.Fields{
						"at":      "signals.run",
						"kind":    kind,
						"handler": h.id,
						"panic":   r,
					}).Error("signal_handler_panicked")
				}
			}()
			h.fn()
		}()
	}
}

// StopHandle stops signal delivery and makes Handle return. Safe to call
// more than once.
func StopHandle() {
	stopOnce.Do(func() {
		stopNotify()
		close(sigChan)
	})
}
