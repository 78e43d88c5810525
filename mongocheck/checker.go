// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"context"
	"fmt"
)

// Option configures a Checker.
type Option func(*Checker)

// WithDatabase names the database to ping.  An empty name leaves the database from the
// connection string, if any, in place.
func WithDatabase(name string) Option {
	return func(c *Checker) {
		if len(name) > 0 {
			c.database = name
		}
	}
}

// WithCache sets the Cache clients are drawn from.  If nil, DefaultCache() is used.
func WithCache(cache *Cache) Option {
	return func(c *Checker) {
		if cache == nil {
			c.cache = DefaultCache()
		} else {
			c.cache = cache
		}
	}
}

// Checker is a health.Checker for a MongoDB deployment.
type Checker struct {
	settings Settings
	database string
	cache    *Cache
}

// New validates the connection string and creates a Checker.
func New(uri string, options ...Option) (*Checker, error) {
	settings, err := ParseSettings(uri)
	if err != nil {
		return nil, err
	}

	c := &Checker{
		settings: settings,
		database: settings.Database(),
		cache:    DefaultCache(),
	}

	for _, o := range options {
		o(c)
	}

	return c, nil
}

// Settings returns the validated connection settings.
func (c *Checker) Settings() Settings {
	return c.settings
}

// Database is the database pinged by this Checker.  If empty, Check lists database names instead.
func (c *Checker) Database() string {
	return c.database
}

func (c *Checker) Check(ctx context.Context) error {
	client, err := c.cache.Get(ctx, c.settings)
	if err != nil {
		return err
	}

	if len(c.database) > 0 {
		if err := client.Ping(ctx, c.database); err != nil {
			return fmt.Errorf("mongodb ping of database %s failed: %w", c.database, err)
		}

		return nil
	}

	if _, err := client.ListDatabaseNames(ctx); err != nil {
		return fmt.Errorf("mongodb list databases failed: %w", err)
	}

	return nil
}
