package util

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// SetupSignalHandler returns a child of parent that is cancelled on SIGINT or
// SIGTERM, so an in-flight open or resolve stops its Rancher requests and the
// plugin cache is left as it was. A second signal exits at once with
// SignalExitCode. stop releases the handler and cancels the context.
func SetupSignalHandler(parent context.Context, logger *slog.Logger) (ctx context.Context, stop func()) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, shutdownSignals...)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigCh:
			logger.Info("interrupted, stopping", "signal", sig.String())
			cancel()
		case <-done:
			return
		}

		select {
		case sig := <-sigCh:
			logger.Warn("second signal, exiting without waiting for requests", "signal", sig.String())
			os.Exit(SignalExitCode(sig))
		case <-done:
		}
	}()

	var once sync.Once
	stop = func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			cancel()
		})
	}
	return ctx, stop
}

// SignalExitCode is the shell convention for a process killed by sig: 128+n
func SignalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}
	return 1
}
