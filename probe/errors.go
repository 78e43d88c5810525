// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"errors"
	"fmt"
)

// Kind classifies the failures a Connection can produce.
type Kind int

const (
	UnknownError Kind = iota
	ConfigurationError
	ConnectError
	TLSHandshakeError
	IOError
	PreconditionError
)

var (
	ErrConfiguration = errors.New("invalid probe configuration")
	ErrConnect       = errors.New("connect failed")
	ErrTLSHandshake  = errors.New("tls handshake failed")
	ErrIO            = errors.New("i/o failed")
	ErrPrecondition  = errors.New("operation not allowed in the current state")

	errEmptyHost    = errors.New("a host is required")
	errInvalidPort  = errors.New("the port must be between 1 and 65535")
	errNotConnected = errors.New("Connect must succeed before commands can be sent")
	errConnectOnce  = errors.New("Connect can only be called once per connection")
)

// String returns the label used for this kind in logs and metrics.
func (k Kind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration"
	case ConnectError:
		return "connect"
	case TLSHandshakeError:
		return "tls_handshake"
	case IOError:
		return "io"
	case PreconditionError:
		return "precondition"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case ConfigurationError:
		return ErrConfiguration
	case ConnectError:
		return ErrConnect
	case TLSHandshakeError:
		return ErrTLSHandshake
	case IOError:
		return ErrIO
	case PreconditionError:
		return ErrPrecondition
	default:
		return nil
	}
}

// Error is the error type returned by every Connection operation.  Err holds the original cause.
//
// errors.Is matches an Error against the sentinel for its Kind, e.g. errors.Is(err, ErrConnect),
// as well as against anything in the chain of its cause.
type Error struct {
	Kind Kind
	Op   string
	Addr string
	Err  error
}

func (e *Error) Error() string {
	if len(e.Addr) > 0 {
		return fmt.Sprintf("probe %s %s: %s: %v", e.Op, e.Addr, e.Kind.sentinel(), e.Err)
	}

	return fmt.Sprintf("probe %s: %s: %v", e.Op, e.Kind.sentinel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the Kind of the first *Error in err's chain, or UnknownError if there is none.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}

	return UnknownError
}
