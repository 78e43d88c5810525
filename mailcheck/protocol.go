// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mailcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Protocol is a mail protocol with known ports and liveness commands.
type Protocol int

const (
	SMTP Protocol = iota
	IMAP
	POP3
)

// DefaultClientName is the argument to SMTP's EHLO when no client name is configured.
const DefaultClientName = "localhost"

var ErrInvalidProtocol = errors.New("invalid mail protocol")

type preset struct {
	name     string
	port     int
	tlsPort  int
	commands func(clientName string) []string
}

var presets = map[Protocol]preset{
	SMTP: {
		name:    "smtp",
		port:    25,
		tlsPort: 465,
		commands: func(clientName string) []string {
			return []string{"EHLO " + clientName + "\r\n"}
		},
	},
	IMAP: {
		name:    "imap",
		port:    143,
		tlsPort: 993,
		commands: func(string) []string {
			return []string{"A1 NOOP\r\n"}
		},
	},
	POP3: {
		name:    "pop3",
		port:    110,
		tlsPort: 995,
		commands: func(string) []string {
			return []string{"NOOP\r\n"}
		},
	},
}

func (p Protocol) String() string {
	if preset, ok := presets[p]; ok {
		return preset.name
	}

	return "unknown"
}

// ParseProtocol accepts the name of a protocol in any case.
func ParseProtocol(v string) (Protocol, error) {
	name := strings.ToLower(strings.TrimSpace(v))
	for p, preset := range presets {
		if preset.name == name {
			return p, nil
		}
	}

	return SMTP, fmt.Errorf("%w: %q", ErrInvalidProtocol, v)
}

func (p Protocol) MarshalText() ([]byte, error) {
	if _, ok := presets[p]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidProtocol, int(p))
	}

	return []byte(p.String()), nil
}

func (p *Protocol) UnmarshalText(text []byte) (err error) {
	*p, err = ParseProtocol(string(text))
	return
}

// DefaultPort is the well-known port for this protocol, either plain or implicit TLS.
func (p Protocol) DefaultPort(useTLS bool) int {
	preset := presets[p]
	if useTLS {
		return preset.tlsPort
	}

	return preset.port
}

// DefaultCommands are the liveness commands sent after the greeting.  clientName is only
// used by SMTP, and defaults to DefaultClientName.
func (p Protocol) DefaultCommands(clientName string) []string {
	preset, ok := presets[p]
	if !ok {
		return nil
	}

	if len(clientName) == 0 {
		clientName = DefaultClientName
	}

	return preset.commands(clientName)
}
