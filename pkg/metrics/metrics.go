package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	ResultSuccess = "success"
	ResultError   = "error"

	DirectionUpload   = "upload"
	DirectionDownload = "download"
)

// swift client operation metrics
var (
	OperationTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swift",
		Subsystem: "client",
		Name:      "operations_total",
		Help:      "Total number of object operations",
	}, []string{"operation", "result"})

	OperationTime = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "swift",
		Subsystem: "client",
		Name:      "operation_duration_seconds",
		Help:      "Length of time per object operation, including the transfer",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0,
			2.5, 5, 10, 30, 60, 120, 300, 600},
	}, []string{"operation"})

	TransferBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swift",
		Subsystem: "client",
		Name:      "transfer_bytes_total",
		Help:      "Total number of object bytes moved",
	}, []string{"direction"})
)

var (
	// SlowOperationThreshold is a duration which operations taking longer than will be logged.
	// This can be directly modified to override the default value when used as a library.
	SlowOperationThreshold = 30 * time.Second
)

func init() {
	Registry.MustRegister(OperationTotal, OperationTime, TransferBytes)
}

func ObserveOperation(start time.Time, operation, name string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	OperationTotal.WithLabelValues(operation, result).Inc()
	duration := time.Since(start)
	OperationTime.WithLabelValues(operation).Observe(duration.Seconds())
	if SlowOperationThreshold > 0 && duration >= SlowOperationThreshold {
		logrus.Infof("Slow %s (started: %v) (total time: %v): %s", operation, start, duration, name)
	}
}

func ObserveTransfer(direction string, n int64) {
	if n > 0 {
		TransferBytes.WithLabelValues(direction).Add(float64(n))
	}
}
