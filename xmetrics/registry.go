// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"fmt"
	"sync"

	"github.com/go-kit/kit/metrics"
	gokitprometheus "github.com/go-kit/kit/metrics/prometheus"
	"github.com/go-kit/kit/metrics/provider"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PrometheusProvider is a Prometheus-specific version of go-kit's metrics.Provider.  Use this interface
// when interacting directly with Prometheus.
type PrometheusProvider interface {
	NewCounterVec(string) *prometheus.CounterVec
	NewGaugeVec(string) *prometheus.GaugeVec
	NewHistogramVec(string) *prometheus.HistogramVec
}

// Registry is the core abstraction for this package.  It is a Prometheus registry and a go-kit metrics.Provider all in one.
//
// Metrics that were preregistered through a Module are returned with their declared labels.  Names that were
// never declared produce ad hoc, unlabeled metrics which are cached for subsequent calls.
type Registry interface {
	PrometheusProvider
	provider.Provider
	prometheus.Gatherer
	prometheus.Registerer
}

type registry struct {
	*prometheus.Registry

	logger    *zap.Logger
	namespace string
	subsystem string

	lock  sync.Mutex
	cache map[string]prometheus.Collector
}

// NewRegistry creates a Registry with every metric returned by the given modules preregistered.
// Duplicate metric names across modules produce an error.
func NewRegistry(o *Options, modules ...Module) (Registry, error) {
	r := &registry{
		Registry:  o.registry(),
		logger:    o.logger(),
		namespace: o.namespace(),
		subsystem: o.subsystem(),
		cache:     make(map[string]prometheus.Collector),
	}

	for _, module := range modules {
		for _, m := range module() {
			if _, exists := r.cache[m.Name]; exists {
				return nil, fmt.Errorf("duplicate metric: %s", m.Name)
			}

			c, err := m.collector(r.namespace, r.subsystem)
			if err != nil {
				return nil, err
			}

			if err := r.Registry.Register(c); err != nil {
				return nil, fmt.Errorf("unable to preregister metric %s: %w", m.Name, err)
			}

			r.logger.Debug("registered metric", zap.String("name", m.Name), zap.String("type", m.Type))
			r.cache[m.Name] = c
		}
	}

	return r, nil
}

// MustNewRegistry is like NewRegistry, except that it panics on any error.
func MustNewRegistry(o *Options, modules ...Module) Registry {
	r, err := NewRegistry(o, modules...)
	if err != nil {
		panic(err)
	}

	return r
}

// collector returns the cached collector for name, creating an ad hoc one of the given type if necessary.
func (r *registry) collector(name, metricType string) prometheus.Collector {
	r.lock.Lock()
	defer r.lock.Unlock()

	if existing, ok := r.cache[name]; ok {
		return existing
	}

	c, err := Metric{Name: name, Type: metricType}.collector(r.namespace, r.subsystem)
	if err != nil {
		panic(err)
	}

	if err := r.Registry.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			c = already.ExistingCollector
		} else {
			panic(err)
		}
	}

	r.cache[name] = c
	return c
}

// typed fetches the collector for name and asserts that it is a V, panicking when a
// preregistered metric of a different type already holds the name.
func typed[V prometheus.Collector](r *registry, name, metricType string) V {
	v, ok := r.collector(name, metricType).(V)
	if !ok {
		panic(fmt.Errorf("metric %s is not a %s", name, metricType))
	}

	return v
}

func (r *registry) NewCounterVec(name string) *prometheus.CounterVec {
	return typed[*prometheus.CounterVec](r, name, CounterType)
}

func (r *registry) NewGaugeVec(name string) *prometheus.GaugeVec {
	return typed[*prometheus.GaugeVec](r, name, GaugeType)
}

func (r *registry) NewHistogramVec(name string) *prometheus.HistogramVec {
	return typed[*prometheus.HistogramVec](r, name, HistogramType)
}

func (r *registry) NewCounter(name string) metrics.Counter {
	return gokitprometheus.NewCounter(r.NewCounterVec(name))
}

func (r *registry) NewGauge(name string) metrics.Gauge {
	return gokitprometheus.NewGauge(r.NewGaugeVec(name))
}

// NewHistogram ignores the bucket count.  Buckets come from the preregistered Metric, if any.
func (r *registry) NewHistogram(name string, _ int) metrics.Histogram {
	return gokitprometheus.NewHistogram(r.NewHistogramVec(name))
}

func (r *registry) Stop() {
}
