// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mailcheck

import (
	"time"

	"github.com/xmidt-org/depcheck/health"
	"github.com/xmidt-org/depcheck/probe"
)

// RegisterOption tailors the health.Registration for a mail check.
type RegisterOption func(*registration)

type registration struct {
	health.Registration
	probeOptions []probe.Option
}

// WithName overrides the registration name, which defaults to the protocol name.
func WithName(name string) RegisterOption {
	return func(r *registration) {
		if len(name) > 0 {
			r.Name = name
		}
	}
}

func WithFailureStatus(s health.Status) RegisterOption {
	return func(r *registration) {
		r.FailureStatus = s
	}
}

func WithTags(tags ...string) RegisterOption {
	return func(r *registration) {
		r.Tags = append(r.Tags, tags...)
	}
}

func WithTimeout(d time.Duration) RegisterOption {
	return func(r *registration) {
		r.Timeout = d
	}
}

// WithProbeOptions passes options, such as a logger or measures, to every probe connection.
func WithProbeOptions(options ...probe.Option) RegisterOption {
	return func(r *registration) {
		r.probeOptions = append(r.probeOptions, options...)
	}
}

// NewRegistration builds the health.Registration for the mail server described by o.
func NewRegistration(o Options, options ...RegisterOption) (health.Registration, error) {
	r := registration{
		Registration: health.Registration{
			Name: o.Protocol.String(),
		},
	}

	for _, option := range options {
		option(&r)
	}

	checker, err := New(o, r.probeOptions...)
	if err != nil {
		return health.Registration{}, err
	}

	r.Checker = checker
	return r.Registration, nil
}

// Register adds a mail check to a health registry.
func Register(registry *health.Registry, o Options, options ...RegisterOption) error {
	r, err := NewRegistration(o, options...)
	if err != nil {
		return err
	}

	return registry.Add(r)
}

// Config is the externally configured form of a mail check.
type Config struct {
	Options `mapstructure:",squash"`

	Name          string
	FailureStatus health.Status
	Tags          []string
	Timeout       time.Duration
}

// Registration builds the health.Registration described by this Config.
func (c Config) Registration(probeOptions ...probe.Option) (health.Registration, error) {
	return NewRegistration(
		c.Options,
		WithName(c.Name),
		WithFailureStatus(c.FailureStatus),
		WithTags(c.Tags...),
		WithTimeout(c.Timeout),
		WithProbeOptions(probeOptions...),
	)
}
