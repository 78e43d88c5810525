// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/xmidt-org/depcheck/xmetrics"
)

// ClientGauge is the name of the gauge tracking cached clients
const ClientGauge = "mongo_clients"

// Metrics returns the metrics produced by this package.
func Metrics() []xmetrics.Metric {
	return []xmetrics.Metric{
		{
			Name: ClientGauge,
			Type: xmetrics.GaugeType,
			Help: "The number of cached mongodb clients, one per distinct connection signature",
		},
	}
}

// Measures is the set of go-kit metrics a Cache reports to.
type Measures struct {
	Clients metrics.Gauge
}

func NewMeasures(r xmetrics.Registry) *Measures {
	return &Measures{
		Clients: r.NewGauge(ClientGauge),
	}
}

func discardMeasures() *Measures {
	return &Measures{
		Clients: discard.NewGauge(),
	}
}
