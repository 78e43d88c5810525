// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"crypto/tls"
	"net"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// Option represents a configuration option for a Connection
type Option func(*Connection)

// WithLogger sets the zap logger for a Connection.  If nil, sallust.Default() is used.
func WithLogger(l *zap.Logger) Option {
	return func(c *Connection) {
		if l == nil {
			c.logger = sallust.Default()
		} else {
			c.logger = l
		}
	}
}

// WithDialer sets the strategy used to open the raw socket.  If nil, a zero net.Dialer is used.
func WithDialer(d Dialer) Option {
	return func(c *Connection) {
		if d == nil {
			c.dialer = new(net.Dialer)
		} else {
			c.dialer = d
		}
	}
}

// WithTLSConfig supplies a base TLS configuration, e.g. for custom root CAs or client certificates.
// The configuration is cloned for each handshake.  The Connection's TrustPolicy always decides
// whether certificates are verified, regardless of InsecureSkipVerify in this configuration.
func WithTLSConfig(config *tls.Config) Option {
	return func(c *Connection) {
		c.tlsConfig = config
	}
}

// WithMeasures sets the metrics a Connection reports to.  If nil, metrics are discarded.
func WithMeasures(m *Measures) Option {
	return func(c *Connection) {
		if m == nil {
			c.measures = discardMeasures()
		} else {
			c.measures = m
		}
	}
}
