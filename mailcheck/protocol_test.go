// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mailcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolDefaults(t *testing.T) {
	testData := []struct {
		protocol Protocol
		name     string
		port     int
		tlsPort  int
		commands []string
	}{
		{SMTP, "smtp", 25, 465, []string{"EHLO localhost\r\n"}},
		{IMAP, "imap", 143, 993, []string{"A1 NOOP\r\n"}},
		{POP3, "pop3", 110, 995, []string{"NOOP\r\n"}},
	}

	for _, record := range testData {
		t.Run(record.name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(record.name, record.protocol.String())
			assert.Equal(record.port, record.protocol.DefaultPort(false))
			assert.Equal(record.tlsPort, record.protocol.DefaultPort(true))
			assert.Equal(record.commands, record.protocol.DefaultCommands(""))
		})
	}

	assert.Equal(t, []string{"EHLO probe.example.com\r\n"}, SMTP.DefaultCommands("probe.example.com"))
	assert.Equal(t, "unknown", Protocol(42).String())
	assert.Nil(t, Protocol(42).DefaultCommands(""))
}

func TestParseProtocol(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	p, err := ParseProtocol(" IMAP ")
	require.NoError(err)
	assert.Equal(IMAP, p)

	_, err = ParseProtocol("gopher")
	assert.ErrorIs(err, ErrInvalidProtocol)

	var unmarshaled Protocol
	require.NoError(unmarshaled.UnmarshalText([]byte("pop3")))
	assert.Equal(POP3, unmarshaled)

	text, err := SMTP.MarshalText()
	require.NoError(err)
	assert.Equal("smtp", string(text))

	_, err = Protocol(42).MarshalText()
	assert.ErrorIs(err, ErrInvalidProtocol)
}
