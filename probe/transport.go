// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"time"
)

// Dialer is the behavior required to open the raw socket.  *net.Dialer implements this interface.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// transport is the capability a Connection needs from its underlying channel.  Plain and TLS
// channels are composed rather than layered through inheritance:  tlsTransport owns a plainTransport.
type transport interface {
	// connect establishes the channel.  Errors are always *Error values.
	connect(ctx context.Context, address string) error

	// exchange writes command and then performs exactly one read into buffer.
	exchange(ctx context.Context, command, buffer []byte) (int, error)

	// close releases everything connect allocated.  It is only ever called once.
	close() error
}

// aLongTimeAgo is a deadline in the past, used to abort blocking I/O when a context is cancelled.
var aLongTimeAgo = time.Unix(1, 0)

// watch applies ctx to conn for the duration of a single I/O operation.  Once ctx is done, any blocked
// read or write on conn fails.  The returned function must be called when the operation completes.
func watch(ctx context.Context, conn net.Conn) func() {
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		defer close(fired)
		conn.SetDeadline(aLongTimeAgo)
	})

	return func() {
		if !stop() {
			<-fired
		}

		conn.SetDeadline(time.Time{})
	}
}

// exchangeOn is the request/response step shared by every transport.
func exchangeOn(ctx context.Context, conn net.Conn, command, buffer []byte) (n int, err error) {
	defer watch(ctx, conn)()

	if _, err = conn.Write(command); err == nil {
		n, err = conn.Read(buffer)
	}

	if err != nil && ctx.Err() != nil {
		err = errors.Join(ctx.Err(), err)
	}

	return
}

type plainTransport struct {
	dialer Dialer
	conn   net.Conn
}

func (t *plainTransport) connect(ctx context.Context, address string) error {
	conn, err := t.dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return &Error{Kind: ConnectError, Op: "connect", Addr: address, Err: err}
	}

	t.conn = conn
	return nil
}

func (t *plainTransport) exchange(ctx context.Context, command, buffer []byte) (int, error) {
	return exchangeOn(ctx, t.conn, command, buffer)
}

func (t *plainTransport) close() error {
	if t.conn != nil {
		return t.conn.Close()
	}

	return nil
}

type tlsTransport struct {
	socket  *plainTransport
	config  *tls.Config
	session *tls.Conn
}

func (t *tlsTransport) connect(ctx context.Context, address string) error {
	if err := t.socket.connect(ctx, address); err != nil {
		return err
	}

	session := tls.Client(t.socket.conn, t.config)
	if err := session.HandshakeContext(ctx); err != nil {
		return &Error{Kind: TLSHandshakeError, Op: "connect", Addr: address, Err: err}
	}

	t.session = session
	return nil
}

func (t *tlsTransport) exchange(ctx context.Context, command, buffer []byte) (int, error) {
	return exchangeOn(ctx, t.session, command, buffer)
}

// close ends the TLS session with a close_notify and then closes the socket.  tls.Conn.Close
// would also close the socket, so only the write side of the session is shut down here.
func (t *tlsTransport) close() error {
	var sessionErr error
	if t.session != nil {
		sessionErr = t.session.CloseWrite()
	}

	return errors.Join(sessionErr, t.socket.close())
}
