// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"
)

var errNotHijacker = errors.New("the underlying response does not support hijacking")

// statusRecorder remembers the first status code sent through it.  A body written
// before any header counts as http.StatusOK, mirroring net/http.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(status int) {
	if sr.status == 0 {
		sr.status = status
	}

	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(p []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}

	return sr.ResponseWriter.Write(p)
}

// Unwrap exposes the delegate to http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := sr.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}

	return nil, nil, errNotHijacker
}

// served reports whether the request counts as successfully serviced.
func (sr *statusRecorder) served() bool {
	return sr.status < http.StatusBadRequest
}

// RequestTracker decorates a handler so that the requests it serves are counted in this
// Monitor's stats.  A panicking delegate is answered with http.StatusInternalServerError
// and counted as denied.
func (m *Monitor) RequestTracker(delegate http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		m.SendEvent(Inc(TotalRequestsReceived, 1))

		recorder := &statusRecorder{ResponseWriter: response}
		defer func() {
			outcome := TotalRequestsSuccessfullyServiced
			if p := recover(); p != nil {
				m.logger.Error("delegate handler panicked", zap.Any("panic", p), zap.String("path", request.URL.Path))
				if recorder.status == 0 {
					recorder.WriteHeader(http.StatusInternalServerError)
				}

				outcome = TotalRequestsDenied
			} else if !recorder.served() {
				outcome = TotalRequestsDenied
			}

			m.SendEvent(Inc(outcome, 1))
		}()

		delegate.ServeHTTP(recorder, request)
	})
}
