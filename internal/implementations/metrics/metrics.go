package metrics

import (
	"net/http"
	"passreset/internal/core/domain/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Prometheus struct {
	registry      *prometheus.Registry
	passwordReset *prometheus.CounterVec
}

// NewPrometheus creates its own registry with the Go runtime and process
// collectors registered next to the application counters.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	passwordReset := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "passreset_password_reset_total",
			Help: "Total number of auth and password reset steps by outcome",
		},
		[]string{"step", "outcome"},
	)
	registry.MustRegister(passwordReset)

	return &Prometheus{registry: registry, passwordReset: passwordReset}
}

func (p *Prometheus) Observe(step string, outcome metrics.Outcome) {
	p.passwordReset.WithLabelValues(step, string(outcome)).Inc()
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
