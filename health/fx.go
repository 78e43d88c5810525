// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"sync"
	"time"

	"github.com/xmidt-org/depcheck/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// RegistrationGroup is the fx value group that Registrations are collected from.
	RegistrationGroup = "health_registrations"

	// StatsListenerGroup is the fx value group that StatsListeners are collected from.
	StatsListenerGroup = "health_stats_listeners"
)

// Config is the configuration for the health framework.
type Config struct {
	// Interval is how often the Monitor evaluates the Registry.
	Interval time.Duration

	// MaxConcurrency bounds the number of checks evaluated at once.
	MaxConcurrency int
}

// Provide contributes a Registration to the RegistrationGroup.
func Provide(r Registration) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Group: RegistrationGroup,
			Target: func() Registration {
				return r
			},
		},
	)
}

// RegistryIn is the set of dependencies for a Registry.
type RegistryIn struct {
	fx.In

	Config        Config            `optional:"true"`
	Logger        *zap.Logger       `optional:"true"`
	Metrics       xmetrics.Registry `optional:"true"`
	Registrations []Registration    `group:"health_registrations"`
}

// ProvideRegistry builds a Registry holding every Registration in the RegistrationGroup.
func ProvideRegistry(in RegistryIn) (*Registry, error) {
	options := []RegistryOption{
		WithMaxConcurrency(in.Config.MaxConcurrency),
		WithRegistryLogger(in.Logger),
	}

	if in.Metrics != nil {
		options = append(options, WithMeasures(NewMeasures(in.Metrics)))
	}

	registry := NewRegistry(options...)
	for _, r := range in.Registrations {
		if err := registry.Add(r); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// MonitorIn is the set of dependencies for a Monitor.
type MonitorIn struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registry  *Registry
	Config    Config          `optional:"true"`
	Logger    *zap.Logger     `optional:"true"`
	Listeners []StatsListener `group:"health_stats_listeners"`
}

// ProvideMonitor builds a Monitor whose Run is bound to the application lifecycle.
func ProvideMonitor(in MonitorIn) *Monitor {
	var (
		m = NewMonitor(
			in.Registry,
			WithInterval(in.Config.Interval),
			WithMonitorLogger(in.Logger),
			WithStatsListeners(in.Listeners...),
		)

		waitGroup = new(sync.WaitGroup)
		shutdown  = make(chan struct{})
	)

	in.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return m.Run(waitGroup, shutdown)
		},
		OnStop: func(ctx context.Context) error {
			close(shutdown)

			stopped := make(chan struct{})
			go func() {
				waitGroup.Wait()
				close(stopped)
			}()

			select {
			case <-stopped:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	return m
}

// Module provides the Registry, Monitor, and report Handler.  Checks join by contributing
// Registrations to the RegistrationGroup, e.g. with Provide.
var Module = fx.Module(
	"health",
	fx.Provide(
		ProvideRegistry,
		ProvideMonitor,
		NewHandler,
	),
)
