package ic3

import (
	"os"
	"os/signal"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// activeEngine lets the signal handler goroutine reach the running
// engine without the rest of the (otherwise single-threaded, per spec.md
// §5) engine code taking any locks.
var activeEngine atomic.Pointer[Engine]

// PrintStatistics logs the engine's accumulated counters, falling back to
// a bare logrus.StandardLogger() if none was configured.
func (e *Engine) PrintStatistics() {
	log := e.log
	if log == nil {
		log = logrus.StandardLogger()
	}
	e.stat.Log(log, e.PushFailCounts())
}

// InstallSignalHandler arms e as the active engine and starts a goroutine
// that, on SIGINT, calls PrintStatistics and exits 130. The statistics are
// an Info-level log entry, so nothing is printed when the engine's logger
// is set above Info (the CLI's level without -v).
func (e *Engine) InstallSignalHandler() {
	activeEngine.Store(e)
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		<-ch
		if active := activeEngine.Load(); active != nil {
			active.PrintStatistics()
		}
		os.Exit(130)
	}()
}
