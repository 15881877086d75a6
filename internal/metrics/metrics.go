// Registers:
//
//	#marketgate_refresh_cycles_total
//	#marketgate_unresolved_symbols_total
//	#marketgate_sign_errors_total
//	#marketgate_feed_drops_total
//	#go_* and process_* system metrics
//
// Exposes them on the configured listen address using the Prometheus HTTP
// handler.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once           sync.Once
	refreshCycles  *prometheus.CounterVec
	unresolvedSyms *prometheus.CounterVec
	signErrors     *prometheus.CounterVec
	feedDrops      *prometheus.CounterVec
)

func Init(listen string) {
	once.Do(func() {
		refreshCycles = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketgate_refresh_cycles_total",
				Help: "Number of completed ticker set refresh cycles",
			},
			[]string{"exchange"},
		)

		unresolvedSyms = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketgate_unresolved_symbols_total",
				Help: "Number of tickers sentinel-marked as unresolvable",
			},
			[]string{"exchange", "symbol"},
		)

		signErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketgate_sign_errors_total",
				Help: "Number of failed request signing attempts",
			},
			[]string{"exchange"},
		)

		feedDrops = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketgate_feed_drops_total",
				Help: "Number of feed messages dropped on full buffers",
			},
			[]string{"exchange", "feed"},
		)

		_ = prometheus.Register(refreshCycles)
		_ = prometheus.Register(unresolvedSyms)
		_ = prometheus.Register(signErrors)
		_ = prometheus.Register(feedDrops)
		_ = prometheus.Register(collectors.NewGoCollector())
		_ = prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		if listen == "" {
			listen = "0.0.0.0:2112"
		}
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(listen, nil); err != nil {
				panic("metrics server failed: " + err.Error())
			}
		}()
	})
}

// IncrementRefresh increases the refresh cycle counter for an exchange.
func IncrementRefresh(exchange string) {
	if refreshCycles != nil {
		refreshCycles.WithLabelValues(exchange).Inc()
	}
}

// IncrementUnresolved increases the unresolved symbol counter.
func IncrementUnresolved(exchange, symbol string) {
	if unresolvedSyms != nil {
		unresolvedSyms.WithLabelValues(exchange, symbol).Inc()
	}
}

// IncrementSignError increases the signing error counter for an exchange.
func IncrementSignError(exchange string) {
	if signErrors != nil {
		signErrors.WithLabelValues(exchange).Inc()
	}
}

// IncrementFeedDrop increases the drop counter for a feed on an exchange.
func IncrementFeedDrop(exchange, feed string) {
	if feedDrops != nil {
		feedDrops.WithLabelValues(exchange, feed).Inc()
	}
}
