// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package checkconfig

import (
	"github.com/xmidt-org/depcheck/health"
	"github.com/xmidt-org/depcheck/mailcheck"
	"github.com/xmidt-org/depcheck/mongocheck"
	"github.com/xmidt-org/depcheck/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Out splits a Config into the pieces consumed by the other modules.
type Out struct {
	fx.Out

	Server  Server
	Health  health.Config
	Metrics *xmetrics.Options
	Mongo   []mongocheck.Config
	Mail    []mailcheck.Config
}

// Provide contributes the pieces of c to the graph, along with the configured logger.
func Provide(c Config) fx.Option {
	return fx.Provide(
		func() Out {
			metrics := c.Metrics
			return Out{
				Server:  c.Server,
				Health:  c.Health,
				Metrics: &metrics,
				Mongo:   c.Mongo,
				Mail:    c.Mail,
			}
		},
		func() (*zap.Logger, error) {
			return c.Log.NewLogger()
		},
	)
}
