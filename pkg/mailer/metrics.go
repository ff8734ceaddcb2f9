package mailer

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK    = "ok"
	resultError = "error"
	resultDry   = "dry_run"
)

// Metrics holds the pipeline's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	sends          *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg
// (prometheus.DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mailtmpl_renders_total",
			Help: "Template renders by engine and result",
		}, []string{"engine", "result"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mailtmpl_render_duration_seconds",
			Help:    "Template render latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"engine"}),
		sends: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mailtmpl_sends_total",
			Help: "Send calls by result",
		}, []string{"result"}),
	}

	var errs []error
	for _, c := range []prometheus.Collector{m.renders, m.renderDuration, m.sends} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observeRender(engineName string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := resultOK
	if err != nil {
		result = resultError
	}
	switch {
	case engineName != "":
	case err != nil:
		engineName = "unresolved"
	default:
		engineName = "raw"
	}
	m.renders.WithLabelValues(engineName, result).Inc()
	m.renderDuration.WithLabelValues(engineName).Observe(d.Seconds())
}

func (m *Metrics) observeSend(result string) {
	if m == nil {
		return
	}
	m.sends.WithLabelValues(result).Inc()
}
