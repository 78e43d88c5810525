// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mailcheck

import (
	"fmt"

	"github.com/xmidt-org/depcheck/probe"
)

// Options describes a mail server to check.
type Options struct {
	Protocol Protocol
	Host     string

	// Port defaults to the protocol's well-known port.
	Port int

	UseTLS                   bool
	AllowInvalidCertificates bool

	// Commands are sent after the greeting.  If nil, the protocol's default commands are
	// used.  If empty, only the greeting is read.
	Commands []string

	// ClientName is the argument to SMTP's EHLO.  Defaults to DefaultClientName.
	ClientName string
}

// New creates a probe Checker for the mail server described by o.
func New(o Options, probeOptions ...probe.Option) (*probe.Checker, error) {
	if _, ok := presets[o.Protocol]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidProtocol, int(o.Protocol))
	}

	port := o.Port
	if port == 0 {
		port = o.Protocol.DefaultPort(o.UseTLS)
	}

	commands := o.Commands
	if commands == nil {
		commands = o.Protocol.DefaultCommands(o.ClientName)
	}

	return probe.NewChecker(o.Host, port, o.UseTLS, o.AllowInvalidCertificates, commands, probeOptions...)
}
