// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/xmidt-org/depcheck/checkconfig"
	"github.com/xmidt-org/depcheck/health"
	"github.com/xmidt-org/depcheck/mailcheck"
	"github.com/xmidt-org/depcheck/mongocheck"
	"github.com/xmidt-org/depcheck/probe"
	"github.com/xmidt-org/depcheck/xmetrics"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

const applicationName = "depcheck"

func setupConfig(arguments []string) (checkconfig.Config, error) {
	var (
		v  = checkconfig.NewViper(applicationName)
		fs = checkconfig.NewFlagSet(applicationName)
	)

	if err := checkconfig.ReadInConfig(v, fs, arguments); err != nil {
		return checkconfig.Config{}, err
	}

	return checkconfig.Unmarshal(v)
}

type MetricsIn struct {
	fx.In

	Options *xmetrics.Options
	Logger  *zap.Logger
}

func provideMetrics(in MetricsIn) (xmetrics.Registry, error) {
	o := *in.Options
	o.Logger = in.Logger
	return xmetrics.NewRegistry(&o, probe.Metrics, health.Metrics, mongocheck.Metrics)
}

func options(c checkconfig.Config) fx.Option {
	return fx.Options(
		checkconfig.Provide(c),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		fx.Provide(
			provideMetrics,
			provideRouter,
		),
		health.Module,
		mongocheck.Module,
		mailcheck.Module,
		fx.Invoke(startServer),
	)
}

func main() {
	c, err := setupConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %s\n", err)
		os.Exit(1)
	}

	fx.New(options(c)).Run()
}
