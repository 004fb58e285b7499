package signals

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	once sync.Once
	ctx  context.Context
)

// SetupSignalContext returns a context that is cancelled on SIGINT or
// SIGTERM. A second signal exits the process immediately. Repeated calls
// return the same context.
func SetupSignalContext() context.Context {
	once.Do(func() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())

		c := make(chan os.Signal, 2)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-c
			cancel()
			<-c
			os.Exit(1) // second signal. Exit directly.
		}()
	})
	return ctx
}
