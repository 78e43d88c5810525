// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/depcheck/xmetrics"
)

// Names for our metrics
const (
	ConnectDuration = "probe_connect_duration_seconds"
	ErrorCounter    = "probe_errors"
	CommandCounter  = "probe_commands"
)

// labels
const (
	TLSLabel  = "tls"
	KindLabel = "kind"
)

// Metrics returns the metrics produced by this package.  To initialize them, use NewMeasures.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name:       ConnectDuration,
			Type:       xmetrics.HistogramType,
			Help:       "The time taken to connect, handshake, and complete the initial exchange",
			Buckets:    []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			LabelNames: []string{TLSLabel},
		},
		{
			Name:       ErrorCounter,
			Type:       xmetrics.CounterType,
			Help:       "The count of probe failures by kind",
			LabelNames: []string{KindLabel},
		},
		{
			Name: CommandCounter,
			Type: xmetrics.CounterType,
			Help: "The count of commands sent over probe connections, including the initial exchange",
		},
	}
}

// Measures is the set of go-kit metrics a Connection reports to.
type Measures struct {
	ConnectDuration metrics.Histogram
	Errors          metrics.Counter
	Commands        metrics.Counter
}

// NewMeasures realizes this package's metrics from a registry built with Metrics.
func NewMeasures(r xmetrics.Registry) *Measures {
	return &Measures{
		ConnectDuration: r.NewHistogram(ConnectDuration, 0),
		Errors:          r.NewCounter(ErrorCounter),
		Commands:        r.NewCounter(CommandCounter),
	}
}

// discardMeasures is used when a Connection is not configured with any measures.
func discardMeasures() *Measures {
	return &Measures{
		ConnectDuration: discard.NewHistogram(),
		Errors:          discard.NewCounter(),
		Commands:        discard.NewCounter(),
	}
}

func (m *Measures) observeConnect(useTLS bool, start time.Time) {
	m.ConnectDuration.With(TLSLabel, strconv.FormatBool(useTLS)).Observe(time.Since(start).Seconds())
}

func (m *Measures) countError(err error) {
	m.Errors.With(KindLabel, KindOf(err).String()).Add(1.0)
}
