// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithConnector changes how clients are created.  If nil, Connect is used.
func WithConnector(c Connector) CacheOption {
	return func(cache *Cache) {
		if c == nil {
			cache.connector = Connect
		} else {
			cache.connector = c
		}
	}
}

// WithLogger sets the logger for a Cache.  If nil, sallust.Default() is used.
func WithLogger(l *zap.Logger) CacheOption {
	return func(cache *Cache) {
		if l == nil {
			cache.logger = sallust.Default()
		} else {
			cache.logger = l
		}
	}
}

// WithMeasures sets the metrics a Cache reports to.
func WithMeasures(m *Measures) CacheOption {
	return func(cache *Cache) {
		if m == nil {
			cache.measures = discardMeasures()
		} else {
			cache.measures = m
		}
	}
}

// Cache holds one Client per distinct settings signature.  Clients are created lazily on
// first use and are never evicted.  A Cache is safe for concurrent use, and concurrent
// lookups of a missing signature create exactly one client.
type Cache struct {
	clients   sync.Map
	group     singleflight.Group
	size      atomic.Int64
	connector Connector
	logger    *zap.Logger
	measures  *Measures
}

func NewCache(options ...CacheOption) *Cache {
	c := &Cache{
		connector: Connect,
		logger:    sallust.Default(),
		measures:  discardMeasures(),
	}

	for _, o := range options {
		o(c)
	}

	return c
}

var processCache = NewCache()

// DefaultCache is the process-wide Cache used by checks that aren't given one.
func DefaultCache() *Cache {
	return processCache
}

// Len is the number of cached clients.
func (c *Cache) Len() int {
	return int(c.size.Load())
}

// Get returns the Client for the given settings, creating it if necessary.
func (c *Cache) Get(ctx context.Context, s Settings) (Client, error) {
	if existing, ok := c.clients.Load(s.Signature()); ok {
		return existing.(Client), nil
	}

	v, err, _ := c.group.Do(s.Signature(), func() (interface{}, error) {
		if existing, ok := c.clients.Load(s.Signature()); ok {
			return existing, nil
		}

		client, err := c.connector(ctx, s)
		if err != nil {
			c.logger.Error("unable to create mongodb client", zap.Strings("hosts", s.Hosts()), zap.Error(err))
			return nil, err
		}

		c.clients.Store(s.Signature(), client)
		c.measures.Clients.Set(float64(c.size.Add(1)))
		c.logger.Info("created mongodb client", zap.Strings("hosts", s.Hosts()), zap.String("database", s.Database()))
		return client, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(Client), nil
}

// Close disconnects every cached client.  The Cache remains usable afterward.
func (c *Cache) Close(ctx context.Context) error {
	var errs []error
	c.clients.Range(func(key, value interface{}) bool {
		c.clients.Delete(key)
		c.measures.Clients.Set(float64(c.size.Add(-1)))
		if err := value.(Client).Disconnect(ctx); err != nil {
			errs = append(errs, err)
		}

		return true
	})

	return errors.Join(errs...)
}
