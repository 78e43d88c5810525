// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package health

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Status is the outcome of a health check.  Statuses are ordered, so that the lowest
// value is the worst.
type Status int

const (
	Unhealthy Status = iota
	Degraded
	Healthy
)

var (
	// ErrInvalidStatus indicates that a value could not be interpreted as a Status.
	ErrInvalidStatus = errors.New("invalid health status")

	// ErrPanic is wrapped by the error reported for a Checker that panicked.
	ErrPanic = errors.New("health check panicked")

	errNilChecker = errors.New("no checker configured")
)

func (s Status) String() string {
	switch s {
	case Unhealthy:
		return "unhealthy"
	case Degraded:
		return "degraded"
	case Healthy:
		return "healthy"
	default:
		return "unknown"
	}
}

// Valid tests if this Status is one of the defined constants.
func (s Status) Valid() bool {
	return s >= Unhealthy && s <= Healthy
}

// HTTPStatus is the response code used when this Status is the overall status of a report.
func (s Status) HTTPStatus() int {
	if s == Unhealthy {
		return http.StatusServiceUnavailable
	}

	return http.StatusOK
}

// ParseStatus accepts either the textual form of a Status, in any case, or its integer value.
func ParseStatus(v string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "unhealthy":
		return Unhealthy, nil
	case "degraded":
		return Degraded, nil
	case "healthy":
		return Healthy, nil
	}

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || !Status(i).Valid() {
		return Unhealthy, fmt.Errorf("%w: %q", ErrInvalidStatus, v)
	}

	return Status(i), nil
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}

	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) (err error) {
	*s, err = ParseStatus(string(text))
	return
}

// Checker is the contract every dependency check implements.  A nil error means healthy.
type Checker interface {
	Check(context.Context) error
}

// CheckerFunc is a function type that implements Checker.
type CheckerFunc func(context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// Result is the outcome of evaluating a single Registration.
type Result struct {
	Name     string
	Status   Status
	Err      error
	Duration time.Duration
	Tags     []string
}

func (r Result) MarshalJSON() ([]byte, error) {
	output := struct {
		Name     string   `json:"name"`
		Status   Status   `json:"status"`
		Error    string   `json:"error,omitempty"`
		Duration string   `json:"duration"`
		Tags     []string `json:"tags,omitempty"`
	}{
		Name:     r.Name,
		Status:   r.Status,
		Duration: r.Duration.String(),
		Tags:     r.Tags,
	}

	if r.Err != nil {
		output.Error = r.Err.Error()
	}

	return json.Marshal(output)
}

// Evaluate runs a registration's Checker and converts the outcome into a Result.  Errors and
// panics from the Checker never escape:  both are reported with the registration's FailureStatus.
func Evaluate(ctx context.Context, r Registration) Result {
	start := time.Now()
	err := check(ctx, r)

	result := Result{
		Name:     r.Name,
		Status:   Healthy,
		Duration: time.Since(start),
		Tags:     r.Tags,
	}

	if err != nil {
		result.Status = r.FailureStatus
		result.Err = err
	}

	return result
}

func check(ctx context.Context, r Registration) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()

	if r.Checker == nil {
		return errNilChecker
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	return r.Checker.Check(ctx)
}
