// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mailcheck

import (
	"github.com/xmidt-org/depcheck/health"
	"github.com/xmidt-org/depcheck/probe"
	"github.com/xmidt-org/depcheck/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RegistrationsIn is the set of dependencies for the configured mail checks.
type RegistrationsIn struct {
	fx.In

	Logger  *zap.Logger       `optional:"true"`
	Metrics xmetrics.Registry `optional:"true"`
	Configs []Config          `optional:"true"`
}

// RegistrationsOut contributes every configured mail check to the health registrations.
type RegistrationsOut struct {
	fx.Out

	Registrations []health.Registration `group:"health_registrations,flatten"`
}

// ProvideRegistrations builds one health.Registration for each Config in the graph.  Every
// check shares the probe measures, if a metrics registry is available.
func ProvideRegistrations(in RegistrationsIn) (RegistrationsOut, error) {
	probeOptions := []probe.Option{probe.WithLogger(in.Logger)}
	if in.Metrics != nil {
		probeOptions = append(probeOptions, probe.WithMeasures(probe.NewMeasures(in.Metrics)))
	}

	var out RegistrationsOut
	for _, c := range in.Configs {
		r, err := c.Registration(probeOptions...)
		if err != nil {
			return RegistrationsOut{}, err
		}

		out.Registrations = append(out.Registrations, r)
	}

	return out, nil
}

// Module provides a health registration for each Config supplied as a []Config.
var Module = fx.Module(
	"mailcheck",
	fx.Provide(ProvideRegistrations),
)
