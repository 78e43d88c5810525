// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"time"

	"github.com/xmidt-org/depcheck/health"
)

// DefaultName is the registration name used when a Config doesn't supply one.
const DefaultName = "mongodb"

// Config describes a single MongoDB health check.
type Config struct {
	// URI is the connection string.  It is required.
	URI string

	// Database is pinged by the check.  If unset, the database in URI is used.  If neither
	// names a database, the check lists database names instead.
	Database string

	// Name is the registration name.  Defaults to DefaultName.
	Name string

	// FailureStatus is reported when the check fails.  The zero value is health.Unhealthy.
	FailureStatus health.Status

	Tags    []string
	Timeout time.Duration
}

// Registration builds the health.Registration described by this Config, drawing clients from cache.
func (c Config) Registration(cache *Cache) (health.Registration, error) {
	checker, err := New(c.URI, WithDatabase(c.Database), WithCache(cache))
	if err != nil {
		return health.Registration{}, err
	}

	name := c.Name
	if len(name) == 0 {
		name = DefaultName
	}

	return health.Registration{
		Name:          name,
		Checker:       checker,
		FailureStatus: c.FailureStatus,
		Tags:          c.Tags,
		Timeout:       c.Timeout,
	}, nil
}

// Register adds the check described by c to a health registry.
func Register(r *health.Registry, c Config, cache *Cache) error {
	registration, err := c.Registration(cache)
	if err != nil {
		return err
	}

	return r.Add(registration)
}
