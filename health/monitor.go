// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const (
	// DefaultInterval is how often a Monitor evaluates its Registry when no interval is configured.
	DefaultInterval = 30 * time.Second

	eventQueueSize = 100
)

// StatsListener receives Stats on regular intervals.
type StatsListener interface {
	// OnStats is called with a copy of the monitor's stats map
	// at regular intervals.
	OnStats(Stats)
}

// StatsListenerFunc is a function type that implements StatsListener.
type StatsListenerFunc func(Stats)

func (f StatsListenerFunc) OnStats(stats Stats) {
	f(stats)
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithInterval sets how often the Registry is evaluated and stats are dispatched.
// Nonpositive values leave DefaultInterval in place.
func WithInterval(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithMonitorLogger sets the logger for a Monitor.  If nil, sallust.Default() is used.
func WithMonitorLogger(l *zap.Logger) MonitorOption {
	return func(m *Monitor) {
		if l == nil {
			m.logger = sallust.Default()
		} else {
			m.logger = l
		}
	}
}

// WithStatsListeners appends listeners that receive stats every interval.
func WithStatsListeners(listeners ...StatsListener) MonitorOption {
	return func(m *Monitor) {
		m.statsListeners = append(m.statsListeners, listeners...)
	}
}

// WithMemInfoReader changes where host memory information is read from.
func WithMemInfoReader(r *MemInfoReader) MonitorOption {
	return func(m *Monitor) {
		if r != nil {
			m.memInfoReader = r
		}
	}
}

// WithStats applies stat options to the Monitor's initial stats.
func WithStats(options ...Option) MonitorOption {
	return func(m *Monitor) {
		m.stats.Apply(options...)
	}
}

// Monitor evaluates a Registry on a fixed interval and tracks aggregate statistics.  All
// mutations of the stats are serialized through a single goroutine started by Run.
type Monitor struct {
	registry       *Registry
	stats          Stats
	interval       time.Duration
	logger         *zap.Logger
	event          chan HealthFunc
	done           chan struct{}
	statsListeners []StatsListener
	memInfoReader  *MemInfoReader

	last       atomic.Pointer[Report]
	evaluating atomic.Bool
	once       sync.Once
}

// NewMonitor creates a Monitor for the given Registry.  A nil Registry is replaced with an empty one.
func NewMonitor(registry *Registry, options ...MonitorOption) *Monitor {
	if registry == nil {
		registry = NewRegistry()
	}

	m := &Monitor{
		registry:      registry,
		stats:         NewStats(nil),
		interval:      DefaultInterval,
		logger:        sallust.Default(),
		event:         make(chan HealthFunc, eventQueueSize),
		done:          make(chan struct{}),
		memInfoReader: new(MemInfoReader),
	}

	for _, o := range options {
		o(m)
	}

	return m
}

// Registry returns the Registry this Monitor evaluates.
func (m *Monitor) Registry() *Registry {
	return m.registry
}

// AddStatsListener adds a new listener to this Monitor.  This method
// is asynchronous.  The listener will eventually receive events, but callers
// should not assume events will be dispatched immediately after this method call.
func (m *Monitor) AddStatsListener(listener StatsListener) {
	m.SendEvent(func(Stats) {
		m.statsListeners = append(m.statsListeners, listener)
	})
}

// SendEvent dispatches a HealthFunc to the internal event queue.  Once the Monitor
// has stopped, events are dropped.
func (m *Monitor) SendEvent(hf HealthFunc) {
	select {
	case m.event <- hf:
	case <-m.done:
	}
}

// LastReport returns the most recent Report produced by this Monitor, if any.
func (m *Monitor) LastReport() (Report, bool) {
	if r := m.last.Load(); r != nil {
		return *r, true
	}

	return Report{}, false
}

// Run starts this Monitor.  The first evaluation happens immediately.  This method is
// idempotent:  once a Monitor is Run, it cannot be Run again.  The Monitor stops when
// shutdown is closed, cancelling any evaluation in progress.  waitGroup tracks the monitor's
// goroutines, including evaluations.
func (m *Monitor) Run(waitGroup *sync.WaitGroup, shutdown <-chan struct{}) error {
	m.once.Do(func() {
		m.logger.Debug("health monitor started", zap.Duration("interval", m.interval))

		ctx, cancel := context.WithCancel(context.Background())
		ctx = sallust.With(ctx, m.logger)

		waitGroup.Add(1)
		go func() {
			ticker := time.NewTicker(m.interval)

			defer ticker.Stop()
			defer m.logger.Debug("health monitor stopped")
			defer waitGroup.Done()
			defer close(m.done)
			defer cancel()

			m.evaluate(ctx, waitGroup)
			for {
				select {
				case <-shutdown:
					return

				case hf := <-m.event:
					hf(m.stats)

				case <-ticker.C:
					m.stats.UpdateMemory(m.memInfoReader)
					dispatchStats := m.stats.Clone()
					for _, statsListener := range m.statsListeners {
						statsListener.OnStats(dispatchStats)
					}

					m.evaluate(ctx, waitGroup)
				}
			}
		}()
	})

	return nil
}

// evaluate checks the Registry in the background.  An interval that elapses while the
// previous evaluation is still running is skipped.
func (m *Monitor) evaluate(ctx context.Context, waitGroup *sync.WaitGroup) {
	if !m.evaluating.CompareAndSwap(false, true) {
		m.logger.Warn("skipping health evaluation: the previous evaluation is still running")
		return
	}

	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		defer m.evaluating.Store(false)

		report := m.registry.Check(ctx)
		m.last.Store(&report)
		m.SendEvent(UpdateReport(report))
		m.logger.Debug(
			"health evaluation complete",
			zap.Stringer("id", report.ID),
			zap.Stringer("status", report.Status),
			zap.Duration("duration", report.Duration),
		)
	}()
}

// ServeHTTP writes the current stats as JSON.
func (m *Monitor) ServeHTTP(response http.ResponseWriter, request *http.Request) {
	result := make(chan Stats, 1)
	m.SendEvent(func(stats Stats) {
		stats.UpdateMemory(m.memInfoReader)
		result <- stats.Clone()
	})

	response.Header().Set("Content-Type", "application/json")

	select {
	case stats := <-result:
		if err := json.NewEncoder(response).Encode(stats); err != nil {
			m.logger.Error("could not write stats", zap.Error(err))
		}

	case <-m.done:
		response.WriteHeader(http.StatusServiceUnavailable)
		response.Write([]byte(`{"message": "the health monitor is not running"}`))

	case <-request.Context().Done():
		response.WriteHeader(http.StatusServiceUnavailable)
	}
}
