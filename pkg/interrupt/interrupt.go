// Package interrupt provides the process-wide cancellation flag shared by
// every long-running deployment loop. The flag is set once (normally from a
// signal handler) and never cleared within a run; loops poll it at their
// next safe point rather than being preempted.
package interrupt

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/avkozyr/static-deploy/pkg/logging"
)

// Flag is a shared atomic cancellation flag. It is injected into long-running
// calls instead of being read as ambient global state so tests can simulate
// cancellation deterministically without real signal handling.
type Flag struct {
	set atomic.Bool
}

// NewFlag returns an unset flag.
func NewFlag() *Flag {
	return &Flag{}
}

// Set marks the flag. Safe to call more than once.
func (f *Flag) Set() {
	f.set.Store(true)
}

// IsSet reports whether cancellation was requested. A nil flag never cancels.
func (f *Flag) IsSet() bool {
	if f == nil {
		return false
	}
	return f.set.Load()
}

// Notify arms the flag on the given signals (SIGINT and SIGTERM when none are
// supplied). The handler goroutine sets the flag on the first signal and
// stops listening; in-flight work finishes at its next poll point.
func (f *Flag) Notify(signals ...os.Signal) {
	if len(signals) == 0 {
		signals = []os.Signal{os.Interrupt, syscall.SIGTERM}
	}

	logger := logging.GetLogger("interrupt")
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, signals...)

	go func() {
		sig := <-ch
		logger.Warn().Str("signal", sig.String()).Msg("Cancellation requested")
		f.Set()
		signal.Stop(ch)
	}()
}
