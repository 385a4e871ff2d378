package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitializePrometheusMetrics sets a Prometheus backed service as the default.
// Calling it again keeps the existing service. Meters obtained directly from
// the no-op service before this call stay no-op; lazily loaded ones switch over.
func InitializePrometheusMetrics() {
	mtx.Lock()
	defer mtx.Unlock()
	// don't allow for reset
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = newPrometheusMetrics()
	}
}

type prometheusMetrics struct {
	registry    *prometheus.Registry
	counterVecs sync.Map
	gauges      sync.Map
}

func newPrometheusMetrics() Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	return &prometheusMetrics{registry: registry}
}

func (o *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	if meter, ok := o.counterVecs.Load(name); ok {
		return meter.(CountVecMeter)
	}
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
		},
		labels,
	)
	meter, loaded := o.counterVecs.LoadOrStore(name, &promCountVecMeter{counter: vec})
	if !loaded {
		o.registry.MustRegister(vec)
	}
	return meter.(CountVecMeter)
}

func (o *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	if meter, ok := o.gauges.Load(name); ok {
		return meter.(GaugeMeter)
	}
	gauge := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
		},
	)
	meter, loaded := o.gauges.LoadOrStore(name, &promGaugeMeter{gauge: gauge})
	if !loaded {
		o.registry.MustRegister(gauge)
	}
	return meter.(GaugeMeter)
}

func (o *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})
}

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (c *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (c *promGaugeMeter) Add(i int64) {
	c.gauge.Add(float64(i))
}

func (c *promGaugeMeter) Set(i int64) {
	c.gauge.Set(float64(i))
}
