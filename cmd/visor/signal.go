//go:build !android && !ios && !js

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/oliverbestmann/visor/runqueue"
)

// stopOnInterrupt runs stop on the render thread once the process receives
// an interrupt or termination signal. wake interrupts a host that is blocked
// waiting for events and may be nil.
func stopOnInterrupt(queue *runqueue.Queue, stop, wake func()) (cancel func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})

	go func() {
		select {
		case sig := <-signals:
			slog.Info("Received signal, stopping", slog.String("signal", sig.String()))

			queue.Enqueue(stop)
			if wake != nil {
				wake()
			}

		case <-done:
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}
