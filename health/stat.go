// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

const (
	// check stats, updated each time a Monitor evaluates its Registry
	TotalChecks       Stat = "TotalChecks"
	TotalHealthy      Stat = "TotalHealthy"
	TotalDegraded     Stat = "TotalDegraded"
	TotalUnhealthy    Stat = "TotalUnhealthy"
	LastReportHealthy Stat = "LastReportHealthy"

	// request stats, updated by a Monitor's RequestTracker
	TotalRequestsReceived             Stat = "TotalRequestsReceived"
	TotalRequestsSuccessfullyServiced Stat = "TotalRequestsSuccessfullyServiced"
	TotalRequestsDenied               Stat = "TotalRequestsDenied"
)

var (
	checkStats = []Option{
		TotalChecks,
		TotalHealthy,
		TotalDegraded,
		TotalUnhealthy,
		LastReportHealthy,
	}

	requestStats = []Option{
		TotalRequestsReceived,
		TotalRequestsSuccessfullyServiced,
		TotalRequestsDenied,
	}
)

// Option mutates a Stats map.  Stat and HealthFunc are both Options.
type Option interface {
	Set(Stats)
}

// Stat names a single counter kept by a Monitor.
type Stat string

// Set defines s as zero unless it already has a value.
func (s Stat) Set(stats Stats) {
	Ensure(s)(stats)
}

// HealthFunc is an Option that can change any stat.  Monitors run these on their event goroutine.
type HealthFunc func(Stats)

func (f HealthFunc) Set(stats Stats) {
	f(stats)
}

// Options groups several options into one, applied in order within a single event.
func Options(options ...Option) Option {
	return HealthFunc(func(stats Stats) {
		stats.Apply(options...)
	})
}

// Ensure defines stat as zero unless it already has a value.
func Ensure(stat Stat) HealthFunc {
	return func(stats Stats) {
		if _, defined := stats[stat]; !defined {
			stats[stat] = 0
		}
	}
}

// Inc adds delta to stat.
func Inc(stat Stat, delta int) HealthFunc {
	return func(stats Stats) {
		stats[stat] += delta
	}
}

// Set overwrites stat with value.
func Set(stat Stat, value int) HealthFunc {
	return func(stats Stats) {
		stats[stat] = value
	}
}

// UpdateReport folds a Report into the check stats.
func UpdateReport(r Report) HealthFunc {
	return func(stats Stats) {
		stats[TotalChecks] += len(r.Entries)
		for _, entry := range r.Entries {
			switch entry.Status {
			case Healthy:
				stats[TotalHealthy]++
			case Degraded:
				stats[TotalDegraded]++
			default:
				stats[TotalUnhealthy]++
			}
		}

		if r.Status == Healthy {
			stats[LastReportHealthy] = 1
		} else {
			stats[LastReportHealthy] = 0
		}
	}
}

// Stats holds the current value of each Stat.
type Stats map[Stat]int

// NewStats creates a Stats seeded with every stat a Monitor maintains, then applies the options.
func NewStats(options []Option) Stats {
	s := make(Stats)
	s.Apply(memoryStats...)
	s.Apply(checkStats...)
	s.Apply(requestStats...)
	s.Apply(options...)
	return s
}

// Set copies every value of s into stats, so a Stats can itself be used as an Option.
func (s Stats) Set(stats Stats) {
	for stat, value := range s {
		stats[stat] = value
	}
}

// Clone returns a copy that shares no state with s.
func (s Stats) Clone() Stats {
	clone := make(Stats, len(s))
	s.Set(clone)
	return clone
}

// Apply sets each option on s, in order.
func (s Stats) Apply(options ...Option) {
	for _, o := range options {
		o.Set(s)
	}
}
