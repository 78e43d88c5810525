// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package checkconfig

import (
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/xmidt-org/depcheck/health"
	"github.com/xmidt-org/depcheck/mailcheck"
	"github.com/xmidt-org/depcheck/mongocheck"
	"github.com/xmidt-org/depcheck/xmetrics"
)

// DefaultAddress is where the health endpoints are served when no address is configured.
const DefaultAddress = ":8080"

// Server configures the HTTP server exposing the health endpoints.
type Server struct {
	Address string
}

// Config is the complete configuration of a check service.
type Config struct {
	Log     Log
	Server  Server
	Health  health.Config
	Metrics xmetrics.Options
	Mongo   []mongocheck.Config
	Mail    []mailcheck.Config
}

// NewDefaults returns the default configuration values.
func NewDefaults() Defaults {
	return Defaults{
		"log.level":             "info",
		"log.encoding":          "json",
		"log.outputPaths":       []string{"stdout"},
		"log.errorOutputPaths":  []string{"stderr"},
		"server.address":        DefaultAddress,
		"health.interval":       health.DefaultInterval.String(),
		"health.maxConcurrency": 0,
		"metrics.namespace":     xmetrics.DefaultNamespace,
		"metrics.subsystem":     xmetrics.DefaultSubsystem,
	}
}

var statusType = reflect.TypeOf(health.Status(0))

// StatusHookFunc decodes a health.Status from either its textual form or an integer.
func StatusHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if to != statusType || from == statusType {
			return data, nil
		}

		if from.Kind() == reflect.String {
			return health.ParseStatus(cast.ToString(data))
		}

		i, err := cast.ToIntE(data)
		if err != nil {
			return nil, err
		}

		return health.ParseStatus(cast.ToString(i))
	}
}

// DecodeHook is the mapstructure hook used to unmarshal a Config.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		StatusHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

// Unmarshal applies the defaults to v and decodes the complete Config.
func Unmarshal(v *viper.Viper) (Config, error) {
	ApplyDefaults(v, NewDefaults())

	var c Config
	err := v.Unmarshal(&c, viper.DecodeHook(DecodeHook()))
	return c, err
}
