// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package checkconfig

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log configures the service's zap logger.
type Log struct {
	// Level is the minimum enabled level, e.g. debug or warn.
	Level string

	// Encoding is either json or console.
	Encoding string

	Development      bool
	OutputPaths      []string
	ErrorOutputPaths []string
}

// NewZapConfig produces the zap.Config described by this Log.  Unset fields keep
// zap's production defaults.
func (l Log) NewZapConfig() (zap.Config, error) {
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}

	if len(l.Level) > 0 {
		level, err := zap.ParseAtomicLevel(l.Level)
		if err != nil {
			return zap.Config{}, err
		}

		zc.Level = level
	}

	if len(l.Encoding) > 0 {
		zc.Encoding = l.Encoding
	}

	if len(l.OutputPaths) > 0 {
		zc.OutputPaths = l.OutputPaths
	}

	if len(l.ErrorOutputPaths) > 0 {
		zc.ErrorOutputPaths = l.ErrorOutputPaths
	}

	zc.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	return zc, nil
}

// NewLogger builds the zap.Logger described by this Log.
func (l Log) NewLogger() (*zap.Logger, error) {
	zc, err := l.NewZapConfig()
	if err != nil {
		return nil, err
	}

	return zc.Build()
}
