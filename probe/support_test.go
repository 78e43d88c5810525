// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"io"
	"math/big"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testServer is a loopback service that optionally writes a greeting when a client
// connects and then echoes whatever it receives.  An empty greeting produces a server
// that accepts connections but never answers the initial exchange.
//
// Connect writes zero bytes and then waits for one read, so a plain echo server would
// never answer it.  The greeting is what completes Connect against an echoing peer.
type testServer struct {
	listener net.Listener
	greeting string

	lock  sync.Mutex
	conns []net.Conn
	wg    sync.WaitGroup
}

func startTestServer(t *testing.T, greeting string, config *tls.Config) *testServer {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	if config != nil {
		l = tls.NewListener(l, config)
	}

	s := &testServer{
		listener: l,
		greeting: greeting,
	}

	s.wg.Add(1)
	go s.accept()

	t.Cleanup(s.close)
	return s
}

func (s *testServer) port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *testServer) accept() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		s.lock.Lock()
		s.conns = append(s.conns, conn)
		s.lock.Unlock()

		s.wg.Add(1)
		go s.serve(conn)
	}
}

func (s *testServer) serve(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	if len(s.greeting) > 0 {
		if _, err := io.WriteString(conn, s.greeting); err != nil {
			return
		}

		io.Copy(conn, conn)
		return
	}

	io.Copy(io.Discard, conn)
}

func (s *testServer) close() {
	s.listener.Close()

	s.lock.Lock()
	for _, conn := range s.conns {
		conn.Close()
	}

	s.lock.Unlock()
	s.wg.Wait()
}

// closedPort returns a loopback port that nothing is listening on.
func closedPort(t *testing.T) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

// newSelfSignedCertificate creates a certificate for 127.0.0.1 and localhost that no system pool trusts.
func newSelfSignedCertificate(t *testing.T) (tls.Certificate, *x509.CertPool) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		Subject:               pkix.Name{CommonName: "depcheck probe test"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)

	leaf, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	pool := x509.NewCertPool()
	pool.AddCert(leaf)

	return tls.Certificate{
		Certificate: [][]byte{der},
		PrivateKey:  key,
		Leaf:        leaf,
	}, pool
}

func startTLSTestServer(t *testing.T, greeting string) (*testServer, *x509.CertPool) {
	certificate, pool := newSelfSignedCertificate(t)
	s := startTestServer(t, greeting, &tls.Config{
		Certificates: []tls.Certificate{certificate},
		MinVersion:   tls.VersionTLS12,
	})

	return s, pool
}

func portString(port int) string {
	return strconv.Itoa(port)
}

// startHangUpServer accepts connections, writes greeting, and then closes each one.
func startHangUpServer(t *testing.T, greeting string) int {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := l.Accept()
			if err != nil {
				return
			}

			io.WriteString(conn, greeting)
			conn.Close()
		}
	}()

	t.Cleanup(func() {
		l.Close()
		<-done
	})

	return l.Addr().(*net.TCPAddr).Port
}

// tlsRecordAlert is the TLS content type of an alert record, visible on the wire up to TLS 1.2.
const tlsRecordAlert = 21

// recordingDialer dials real sockets and logs, in order, the TLS content type of each write
// and the moment each socket is closed.
type recordingDialer struct {
	net.Dialer

	lock   sync.Mutex
	events []string
}

func (d *recordingDialer) record(event string) {
	d.lock.Lock()
	d.events = append(d.events, event)
	d.lock.Unlock()
}

func (d *recordingDialer) recorded() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.events...)
}

func (d *recordingDialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	conn, err := d.Dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}

	return &recordingConn{Conn: conn, dialer: d}, nil
}

type recordingConn struct {
	net.Conn
	dialer *recordingDialer
}

func (rc *recordingConn) Write(p []byte) (int, error) {
	if len(p) > 0 {
		rc.dialer.record("write:" + strconv.Itoa(int(p[0])))
	}

	return rc.Conn.Write(p)
}

func (rc *recordingConn) Close() error {
	rc.dialer.record("close")
	return rc.Conn.Close()
}
