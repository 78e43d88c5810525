// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"crypto/tls"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

// ResponseBufferSize is the maximum number of bytes a single SendCommand reads.
const ResponseBufferSize = 512

type state int

const (
	stateUninitialized state = iota
	stateConnected
	stateFailed
	stateClosed
)

func (s state) String() string {
	switch s {
	case stateConnected:
		return "connected"
	case stateFailed:
		return "failed"
	case stateClosed:
		return "closed"
	default:
		return "uninitialized"
	}
}

var responseBuffers = sync.Pool{
	New: func() interface{} {
		b := make([]byte, ResponseBufferSize)
		return &b
	},
}

// Connection is a single-use probe of a TCP service.  Instances must be created with New.
//
// A Connection is not safe for concurrent use.  Callers must serialize Connect, SendCommand,
// and Close on one logical flow.
type Connection struct {
	host      string
	port      int
	address   string
	useTLS    bool
	trust     TrustPolicy
	tlsConfig *tls.Config

	dialer   Dialer
	logger   *zap.Logger
	measures *Measures

	transport transport
	state     state
	closeOnce sync.Once
}

// New creates a Connection for the given target.  The host must be non-empty and the port must be
// a valid TCP port, otherwise a ConfigurationError is returned.  When allowInvalidCertificates is
// true, the AlwaysTrust policy is used for the TLS handshake.
func New(host string, port int, useTLS, allowInvalidCertificates bool, options ...Option) (*Connection, error) {
	if len(host) == 0 {
		return nil, &Error{Kind: ConfigurationError, Op: "new", Err: errEmptyHost}
	}

	if port < 1 || port > 65535 {
		return nil, &Error{Kind: ConfigurationError, Op: "new", Addr: host, Err: errInvalidPort}
	}

	c := &Connection{
		host:     host,
		port:     port,
		address:  net.JoinHostPort(host, strconv.Itoa(port)),
		useTLS:   useTLS,
		trust:    TrustPolicyFor(allowInvalidCertificates),
		dialer:   new(net.Dialer),
		logger:   sallust.Default(),
		measures: discardMeasures(),
	}

	for _, o := range options {
		o(c)
	}

	c.logger = c.logger.With(
		zap.String("address", c.address),
		zap.Bool("tls", c.useTLS),
	)

	return c, nil
}

// Host returns the target host of this connection.
func (c *Connection) Host() string {
	return c.host
}

// Port returns the target port of this connection.
func (c *Connection) Port() int {
	return c.port
}

// UseTLS indicates whether this connection performs a TLS handshake.
func (c *Connection) UseTLS() bool {
	return c.useTLS
}

// TrustPolicy returns the certificate trust policy used by this connection's handshake.
func (c *Connection) TrustPolicy() TrustPolicy {
	return c.trust
}

func (c *Connection) newTransport() transport {
	socket := &plainTransport{dialer: c.dialer}
	if !c.useTLS {
		return socket
	}

	if c.trust == AlwaysTrust {
		c.logger.Warn("certificate validation is disabled for this connection", zap.Stringer("trustPolicy", c.trust))
	}

	return &tlsTransport{
		socket: socket,
		config: c.trust.clientConfig(c.tlsConfig, c.host),
	}
}

// Connect opens the socket, performs the TLS handshake if configured, and then sends an empty
// command to confirm the remote end responds.  It returns true once all of these steps have
// succeeded.  Any failure is returned as an *Error.  Connect may only be called once.
//
// Close must be called regardless of the outcome.
func (c *Connection) Connect(ctx context.Context) (bool, error) {
	if c.state != stateUninitialized {
		return false, c.preconditionError("connect", errConnectOnce)
	}

	start := time.Now()
	c.transport = c.newTransport()

	c.logger.Debug("connecting")
	if err := c.transport.connect(ctx, c.address); err != nil {
		return false, c.fail(err)
	}

	c.state = stateConnected
	if _, err := c.exchange(ctx, ""); err != nil {
		return false, c.fail(err)
	}

	c.measures.observeConnect(c.useTLS, start)
	c.logger.Debug("connected", zap.Duration("duration", time.Since(start)))
	return true, nil
}

func (c *Connection) fail(err error) error {
	if c.state != stateClosed {
		c.state = stateFailed
	}

	c.measures.countError(err)
	c.logger.Debug("probe failed", zap.Stringer("kind", KindOf(err)), zap.Error(err))
	return err
}

func (c *Connection) preconditionError(op string, cause error) error {
	err := &Error{Kind: PreconditionError, Op: op, Addr: c.address, Err: cause}
	c.measures.countError(err)
	c.logger.Debug("operation rejected", zap.String("op", op), zap.Stringer("state", c.state))
	return err
}

// SendCommand writes the ASCII form of command and performs a single read of up to ResponseBufferSize bytes.
// The returned text is the entire read buffer, including any trailing NUL bytes after the data that was read.
// No protocol framing is applied.
//
// Calling SendCommand before Connect has succeeded, or after Close, returns a PreconditionError.
func (c *Connection) SendCommand(ctx context.Context, command string) (string, error) {
	if c.state != stateConnected {
		return "", c.preconditionError("send", errNotConnected)
	}

	response, err := c.exchange(ctx, command)
	if err != nil {
		c.measures.countError(err)
		c.logger.Debug("command failed", zap.Stringer("kind", KindOf(err)), zap.Error(err))
	}

	return response, err
}

// exchange writes command and reads a single response on a connected transport.
func (c *Connection) exchange(ctx context.Context, command string) (string, error) {
	bp := responseBuffers.Get().(*[]byte)
	buffer := *bp
	defer func() {
		clear(buffer)
		responseBuffers.Put(bp)
	}()

	c.measures.Commands.Add(1.0)
	n, err := c.transport.exchange(ctx, asciiBytes(command), buffer)
	if err != nil {
		return "", &Error{Kind: IOError, Op: "send", Addr: c.address, Err: err}
	}

	c.logger.Debug("command exchanged", zap.Int("commandLength", len(command)), zap.Int("read", n))
	return string(buffer), nil
}

// Close releases the TLS session and then the socket.  This method is idempotent:  only the first
// call releases anything, and only the first call can return an error.
func (c *Connection) Close() (err error) {
	c.closeOnce.Do(func() {
		c.state = stateClosed
		if c.transport != nil {
			err = c.transport.close()
			c.logger.Debug("closed", zap.Error(err))
		}
	})

	return
}

// asciiBytes encodes s as ASCII, replacing anything outside of that range with '?'.
func asciiBytes(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0x7f {
			r = '?'
		}

		b = append(b, byte(r))
	}

	return b
}
