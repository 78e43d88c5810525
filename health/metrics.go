// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/depcheck/xmetrics"
)

// Names for our metrics
const (
	CheckDuration = "health_check_duration_seconds"
	CheckStatus   = "health_check_status"
)

// NameLabel is the label carrying the registration name
const NameLabel = "name"

// Metrics returns the metrics produced by this package.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       CheckDuration,
			Type:       xmetrics.HistogramType,
			Help:       "The time taken to evaluate each health check",
			Buckets:    []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			LabelNames: []string{NameLabel},
		},
		{
			Name:       CheckStatus,
			Type:       xmetrics.GaugeType,
			Help:       "The last status of each health check: 0 unhealthy, 1 degraded, 2 healthy",
			LabelNames: []string{NameLabel},
		},
	}
}

// Measures is the set of go-kit metrics a Registry reports to.
type Measures struct {
	CheckDuration metrics.Histogram
	CheckStatus   metrics.Gauge
}

func NewMeasures(r xmetrics.Registry) *Measures {
	return &Measures{
		CheckDuration: r.NewHistogram(CheckDuration, 0),
		CheckStatus:   r.NewGauge(CheckStatus),
	}
}

func discardMeasures() *Measures {
	return &Measures{
		CheckDuration: discard.NewHistogram(),
		CheckStatus:   discard.NewGauge(),
	}
}

func (m *Measures) observe(r Result) {
	m.CheckDuration.With(NameLabel, r.Name).Observe(r.Duration.Seconds())
	m.CheckStatus.With(NameLabel, r.Name).Set(float64(r.Status))
}
