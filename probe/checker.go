// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
)

// Checker runs one complete probe per Check call:  a new Connection is created, connected,
// sent each of the Commands in order, and closed.  Responses are not inspected.
//
// Checker implements health.Checker.
type Checker struct {
	Host                     string
	Port                     int
	UseTLS                   bool
	AllowInvalidCertificates bool

	// Commands are sent, in order, after the initial exchange performed by Connect.
	Commands []string

	// Options are applied to every Connection this Checker creates.
	Options []Option
}

// NewChecker validates the target eagerly, so that configuration mistakes surface when a
// check is registered rather than on each evaluation.
func NewChecker(host string, port int, useTLS, allowInvalidCertificates bool, commands []string, options ...Option) (*Checker, error) {
	if _, err := New(host, port, useTLS, allowInvalidCertificates); err != nil {
		return nil, err
	}

	return &Checker{
		Host:                     host,
		Port:                     port,
		UseTLS:                   useTLS,
		AllowInvalidCertificates: allowInvalidCertificates,
		Commands:                 append([]string(nil), commands...),
		Options:                  append([]Option(nil), options...),
	}, nil
}

// Check performs a single connect-exchange-close cycle.  The first error encountered is returned.
func (c *Checker) Check(ctx context.Context) error {
	conn, err := New(c.Host, c.Port, c.UseTLS, c.AllowInvalidCertificates, c.Options...)
	if err != nil {
		return err
	}

	defer conn.Close()
	if _, err := conn.Connect(ctx); err != nil {
		return err
	}

	for _, command := range c.Commands {
		if _, err := conn.SendCommand(ctx, command); err != nil {
			return err
		}
	}

	return nil
}
