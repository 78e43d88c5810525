// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xmetrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// The metric types understood by a Registry.
const (
	CounterType   = "counter"
	GaugeType     = "gauge"
	HistogramType = "histogram"
)

var (
	errMissingName = errors.New("a name is required for a metric")
	errBadBuckets  = errors.New("histogram buckets must be strictly increasing")
)

// Module is a function type that returns prebuilt metrics.
type Module func() []Metric

// Metric describes a single preregistered metric.  Namespace, Subsystem, and Help
// default to the Registry's namespace, subsystem, and the metric name.
type Metric struct {
	Name        string
	Type        string
	Namespace   string
	Subsystem   string
	Help        string
	ConstLabels map[string]string
	LabelNames  []string

	// Buckets only applies to histograms.  When unset, prometheus.DefBuckets is used.
	Buckets []float64
}

func (m Metric) opts(namespace, subsystem string) prometheus.Opts {
	o := prometheus.Opts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        m.Name,
		Help:        m.Help,
		ConstLabels: prometheus.Labels(m.ConstLabels),
	}

	if len(m.Namespace) > 0 {
		o.Namespace = m.Namespace
	}

	if len(m.Subsystem) > 0 {
		o.Subsystem = m.Subsystem
	}

	if len(o.Help) == 0 {
		o.Help = m.Name
	}

	return o
}

func (m Metric) validate() error {
	if len(m.Name) == 0 {
		return errMissingName
	}

	for i := 1; i < len(m.Buckets); i++ {
		if m.Buckets[i] <= m.Buckets[i-1] {
			return fmt.Errorf("metric %s: %w", m.Name, errBadBuckets)
		}
	}

	return nil
}

// collector builds the Prometheus vector this Metric describes.
func (m Metric) collector(namespace, subsystem string) (prometheus.Collector, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	o := m.opts(namespace, subsystem)
	switch m.Type {
	case CounterType:
		return prometheus.NewCounterVec(prometheus.CounterOpts(o), m.LabelNames), nil

	case GaugeType:
		return prometheus.NewGaugeVec(prometheus.GaugeOpts(o), m.LabelNames), nil

	case HistogramType:
		return prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   o.Namespace,
			Subsystem:   o.Subsystem,
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Buckets:     m.Buckets,
		}, m.LabelNames), nil

	default:
		return nil, fmt.Errorf("metric %s: unsupported type %q", m.Name, m.Type)
	}
}
