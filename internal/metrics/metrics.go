// Package metrics provides global access to a set of meters. It defaults to a
// no-op implementation until InitializePrometheusMetrics is called.
package metrics

import (
	"net/http"
	"sync"
)

const namespace = "simulator"

var (
	mtx     sync.RWMutex
	metrics = defaultNoopMetrics()
)

func service() Metrics {
	mtx.RLock()
	defer mtx.RUnlock()
	return metrics
}

func setService(m Metrics) {
	mtx.Lock()
	defer mtx.Unlock()
	metrics = m
}

// Enabled reports whether a Prometheus backed service is installed.
func Enabled() bool {
	_, ok := service().(*prometheusMetrics)
	return ok
}

// Metrics defines the interface for metrics service implementations
type Metrics interface {
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHandler() http.Handler
}

// HTTPHandler returns the http handler for retrieving metrics. It is nil for the no-op service.
func HTTPHandler() http.Handler {
	return service().GetOrCreateHandler()
}

// CountVecMeter is a monotonically increasing counter with labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// CounterVec returns the labelled counter called name, creating it on first use.
func CounterVec(name string, labels []string) CountVecMeter {
	return service().GetOrCreateCountVecMeter(name, labels)
}

// GaugeMeter is a single value that can go up and down.
type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

// Gauge returns the gauge called name, creating it on first use.
func Gauge(name string) GaugeMeter {
	return service().GetOrCreateGaugeMeter(name)
}

// LazyLoad defers the creation of a meter to its first use, so package level
// meters pick up the service chosen at startup.
func LazyLoad[T any](f func() T) func() T {
	var result T
	var once sync.Once
	return func() T {
		once.Do(func() {
			result = f()
		})
		return result
	}
}

// lazyMeter is LazyLoad for meters. A meter resolved while the no-op service
// is active is resolved again on later uses, so it follows a service
// installed afterwards.
func lazyMeter[T any](f func() T) func() T {
	var (
		mu       sync.Mutex
		result   T
		resolved bool
	)
	return func() T {
		mu.Lock()
		defer mu.Unlock()
		if !resolved {
			result = f()
			resolved = Enabled()
		}
		return result
	}
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return lazyMeter(func() CountVecMeter {
		return CounterVec(name, labels)
	})
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return lazyMeter(func() GaugeMeter {
		return Gauge(name)
	})
}
