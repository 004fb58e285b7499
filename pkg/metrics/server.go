package metrics

import (
	"context"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ServerAddress string
}

const (
	disabledAddress = "0"
	metricsPath     = "/metrics"
)

// Serve exposes the registry until ctx is done. An empty or "0" address
// disables the server.
func Serve(ctx context.Context, config Config) error {
	if config.ServerAddress == "" || config.ServerAddress == disabledAddress {
		return nil
	}

	logrus.Infof("metrics server is starting to listen at %s", config.ServerAddress)
	listener, err := net.Listen("tcp", config.ServerAddress)
	if err != nil {
		return err
	}

	handler := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
	mux := http.NewServeMux()
	mux.Handle(metricsPath, handler)
	server := http.Server{
		Handler: mux,
	}

	go func() {
		logrus.Infof("starting metrics server path %s", metricsPath)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			logrus.Errorf("error serving metrics: %v", err)
		}
	}()

	<-ctx.Done()
	return server.Shutdown(context.Background())
}
