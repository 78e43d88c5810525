// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/ksuid"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyName     = errors.New("a health check name is required")
	ErrNilChecker    = errors.New("a health check requires a checker")
	ErrDuplicateName = errors.New("duplicate health check name")
)

// Registration is a named Checker together with how its failures are reported.
type Registration struct {
	// Name identifies this check in reports.  It is required and must be unique within a Registry.
	Name string

	Checker Checker

	// FailureStatus is reported when Checker returns an error.  The zero value is Unhealthy.
	FailureStatus Status

	// Tags are used to select subsets of registrations.
	Tags []string

	// Timeout, if positive, bounds each evaluation of Checker.
	Timeout time.Duration
}

// Filter selects the registrations that take part in a Registry.Check.
type Filter func(Registration) bool

// WithTags selects registrations that carry any of the given tags.  With no tags, every
// registration is selected.
func WithTags(tags ...string) Filter {
	return func(r Registration) bool {
		if len(tags) == 0 {
			return true
		}

		for _, tag := range tags {
			if slices.Contains(r.Tags, tag) {
				return true
			}
		}

		return false
	}
}

// Report is the aggregated outcome of a Registry.Check.
type Report struct {
	ID       ksuid.KSUID
	Status   Status
	Duration time.Duration
	Entries  []Result
}

func (r Report) MarshalJSON() ([]byte, error) {
	entries := r.Entries
	if entries == nil {
		entries = []Result{}
	}

	return json.Marshal(struct {
		ID       ksuid.KSUID `json:"id"`
		Status   Status      `json:"status"`
		Duration string      `json:"duration"`
		Entries  []Result    `json:"entries"`
	}{
		ID:       r.ID,
		Status:   r.Status,
		Duration: r.Duration.String(),
		Entries:  entries,
	})
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMaxConcurrency bounds the number of checks evaluated at once.  Nonpositive values
// mean no limit.
func WithMaxConcurrency(n int) RegistryOption {
	return func(r *Registry) {
		r.maxConcurrency = n
	}
}

// WithRegistryLogger sets the logger for a Registry.  If nil, sallust.Default() is used.
func WithRegistryLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l == nil {
			r.logger = sallust.Default()
		} else {
			r.logger = l
		}
	}
}

// WithMeasures sets the metrics a Registry reports evaluations to.
func WithMeasures(m *Measures) RegistryOption {
	return func(r *Registry) {
		if m == nil {
			r.measures = discardMeasures()
		} else {
			r.measures = m
		}
	}
}

// Registry is the set of registrations a service reports on.  It is safe for concurrent use.
type Registry struct {
	lock          sync.RWMutex
	registrations []Registration
	names         map[string]bool

	maxConcurrency int
	logger         *zap.Logger
	measures       *Measures
}

func NewRegistry(options ...RegistryOption) *Registry {
	r := &Registry{
		names:    make(map[string]bool),
		logger:   sallust.Default(),
		measures: discardMeasures(),
	}

	for _, o := range options {
		o(r)
	}

	return r
}

// Add appends a registration.  Empty names, duplicate names, and nil checkers are rejected.
func (r *Registry) Add(registration Registration) error {
	switch {
	case len(registration.Name) == 0:
		return ErrEmptyName
	case registration.Checker == nil:
		return fmt.Errorf("%w: %s", ErrNilChecker, registration.Name)
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if r.names[registration.Name] {
		return fmt.Errorf("%w: %s", ErrDuplicateName, registration.Name)
	}

	registration.Tags = slices.Clone(registration.Tags)
	r.names[registration.Name] = true
	r.registrations = append(r.registrations, registration)
	r.logger.Debug("added health check", zap.String("name", registration.Name), zap.Strings("tags", registration.Tags))
	return nil
}

// Registrations returns a copy of the registrations, in the order they were added.
func (r *Registry) Registrations() []Registration {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return slices.Clone(r.registrations)
}

func (r *Registry) selected(filters []Filter) []Registration {
	all := r.Registrations()
	selected := all[:0]

next:
	for _, registration := range all {
		for _, f := range filters {
			if !f(registration) {
				continue next
			}
		}

		selected = append(selected, registration)
	}

	return selected
}

// Check evaluates every registration accepted by all the filters.  Entries appear in registration
// order.  A report with no entries is Healthy.
func (r *Registry) Check(ctx context.Context, filters ...Filter) Report {
	var (
		start    = time.Now()
		selected = r.selected(filters)
		entries  = make([]Result, len(selected))

		group errgroup.Group
	)

	if r.maxConcurrency > 0 {
		group.SetLimit(r.maxConcurrency)
	}

	for i, registration := range selected {
		i, registration := i, registration
		group.Go(func() error {
			entries[i] = Evaluate(ctx, registration)
			r.measures.observe(entries[i])
			if entries[i].Err != nil {
				r.logger.Warn(
					"health check failed",
					zap.String("name", registration.Name),
					zap.Stringer("status", entries[i].Status),
					zap.Error(entries[i].Err),
				)
			}

			return nil
		})
	}

	group.Wait()

	report := Report{
		ID:       ksuid.New(),
		Status:   Healthy,
		Duration: time.Since(start),
		Entries:  entries,
	}

	for _, entry := range entries {
		if entry.Status < report.Status {
			report.Status = entry.Status
		}
	}

	return report
}
