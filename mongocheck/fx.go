// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"github.com/xmidt-org/depcheck/health"
	"github.com/xmidt-org/depcheck/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// CacheIn is the set of dependencies for the Cache shared by configured checks.
type CacheIn struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.Logger       `optional:"true"`
	Metrics   xmetrics.Registry `optional:"true"`
}

// ProvideCache creates a Cache whose clients are disconnected when the application stops.
func ProvideCache(in CacheIn) *Cache {
	options := []CacheOption{WithLogger(in.Logger)}
	if in.Metrics != nil {
		options = append(options, WithMeasures(NewMeasures(in.Metrics)))
	}

	cache := NewCache(options...)
	in.Lifecycle.Append(fx.StopHook(cache.Close))
	return cache
}

// RegistrationsIn is the set of dependencies for the configured checks.
type RegistrationsIn struct {
	fx.In

	Cache   *Cache
	Configs []Config `optional:"true"`
}

// RegistrationsOut contributes every configured check to the health registrations.
type RegistrationsOut struct {
	fx.Out

	Registrations []health.Registration `group:"health_registrations,flatten"`
}

// ProvideRegistrations builds one health.Registration for each Config in the graph.
func ProvideRegistrations(in RegistrationsIn) (RegistrationsOut, error) {
	var out RegistrationsOut
	for _, c := range in.Configs {
		registration, err := c.Registration(in.Cache)
		if err != nil {
			return RegistrationsOut{}, err
		}

		out.Registrations = append(out.Registrations, registration)
	}

	return out, nil
}

// Module provides the Cache and a health registration for each Config supplied as a []Config.
var Module = fx.Module(
	"mongocheck",
	fx.Provide(
		ProvideCache,
		ProvideRegistrations,
	),
)
