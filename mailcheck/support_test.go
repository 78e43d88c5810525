// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mailcheck

import (
	"bufio"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// mailServer is a loopback server that greets, then answers every line with a canned reply
// and records what it received.
type mailServer struct {
	listener net.Listener
	greeting string
	reply    string

	lock     sync.Mutex
	received []string
}

func startMailServer(t *testing.T, greeting, reply string) *mailServer {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &mailServer{
		listener: listener,
		greeting: greeting,
		reply:    reply,
	}

	go s.serve()
	t.Cleanup(func() {
		listener.Close()
	})

	return s
}

func (s *mailServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}

		go s.handle(conn)
	}
}

func (s *mailServer) handle(conn net.Conn) {
	defer conn.Close()
	if _, err := conn.Write([]byte(s.greeting)); err != nil {
		return
	}

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		s.lock.Lock()
		s.received = append(s.received, line)
		s.lock.Unlock()

		if _, err := conn.Write([]byte(s.reply)); err != nil {
			return
		}
	}
}

func (s *mailServer) port() int {
	return s.listener.Addr().(*net.TCPAddr).Port
}

func (s *mailServer) lines() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]string(nil), s.received...)
}
