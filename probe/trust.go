// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import "crypto/tls"

// TrustPolicy governs how a server certificate is accepted during the TLS handshake.
type TrustPolicy int

const (
	// Standard applies the platform's certificate chain and hostname validation.
	Standard TrustPolicy = iota

	// AlwaysTrust accepts any server certificate.  Only use this for self-signed
	// endpoints in controlled environments: it offers no protection against an
	// impersonated server.
	AlwaysTrust
)

// TrustPolicyFor maps the allowInvalidCertificates construction flag onto a TrustPolicy.
func TrustPolicyFor(allowInvalidCertificates bool) TrustPolicy {
	if allowInvalidCertificates {
		return AlwaysTrust
	}

	return Standard
}

func (p TrustPolicy) String() string {
	if p == AlwaysTrust {
		return "always-trust"
	}

	return "standard"
}

// clientConfig produces the TLS client configuration for serverName.  The base configuration,
// which may be nil, is cloned and never modified.
func (p TrustPolicy) clientConfig(base *tls.Config, serverName string) *tls.Config {
	var config *tls.Config
	if base != nil {
		config = base.Clone()
	} else {
		config = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	if len(config.ServerName) == 0 {
		config.ServerName = serverName
	}

	// an AlwaysTrust policy wins over anything in the base configuration, and
	// a Standard policy never inherits InsecureSkipVerify from it
	config.InsecureSkipVerify = p == AlwaysTrust
	return config
}
