package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type RegistererGatherer interface {
	prometheus.Registerer
	prometheus.Gatherer
}

var Registry RegistererGatherer = prometheus.NewRegistry()

// RegisterRuntimeCollectors exposes process and Go runtime metrics. Only
// the CLI calls it; library users register their own.
func RegisterRuntimeCollectors() {
	Registry.MustRegister(
		// expose process metrics like CPU, Memory, file descriptor usage etc.
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		// expose Go runtime metrics like GC stats, memory stats etc.
		collectors.NewGoCollector(),
	)
}
