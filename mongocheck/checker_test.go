// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testNewInvalid(t *testing.T) {
	assert := assert.New(t)

	c, err := New("")
	assert.Nil(c)
	assert.ErrorIs(err, ErrEmptyURI)

	c, err = New("redis://localhost")
	assert.Nil(c)
	assert.Error(err)
}

func testNewDatabase(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	c, err := New("mongodb://localhost/fromuri")
	require.NoError(err)
	assert.Equal("fromuri", c.Database())
	assert.True(DefaultCache() == c.cache)

	c, err = New("mongodb://localhost/fromuri", WithDatabase("explicit"))
	require.NoError(err)
	assert.Equal("explicit", c.Database())

	c, err = New("mongodb://localhost/fromuri", WithDatabase(""))
	require.NoError(err)
	assert.Equal("fromuri", c.Database())

	c, err = New("mongodb://localhost")
	require.NoError(err)
	assert.Empty(c.Database())
	assert.Equal("mongodb://localhost", c.Settings().URI())
}

func TestNew(t *testing.T) {
	t.Run("Invalid", testNewInvalid)
	t.Run("Database", testNewDatabase)
}

func testCheckPing(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		client        = new(mockClient)
		expectedError = errors.New("expected")
	)

	client.On("Ping", mock.Anything, "inventory").Return(nil).Once()
	client.On("Ping", mock.Anything, "inventory").Return(expectedError).Once()

	c, err := New("mongodb://localhost/inventory", WithCache(NewCache(WithConnector(connectTo(client)))))
	require.NoError(err)

	assert.NoError(c.Check(context.Background()))
	assert.ErrorIs(c.Check(context.Background()), expectedError)

	client.AssertExpectations(t)
	client.AssertNotCalled(t, "ListDatabaseNames", mock.Anything)
}

func testCheckListDatabases(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)

		client        = new(mockClient)
		expectedError = errors.New("expected")
	)

	client.On("ListDatabaseNames", mock.Anything).Return([]string{"admin", "local"}, nil).Once()
	client.On("ListDatabaseNames", mock.Anything).Return(nil, expectedError).Once()

	c, err := New("mongodb://localhost", WithCache(NewCache(WithConnector(connectTo(client)))))
	require.NoError(err)

	assert.NoError(c.Check(context.Background()))
	assert.ErrorIs(c.Check(context.Background()), expectedError)

	client.AssertExpectations(t)
	client.AssertNotCalled(t, "Ping", mock.Anything, mock.Anything)
}

func testCheckConnectError(t *testing.T) {
	var (
		assert        = assert.New(t)
		require       = require.New(t)
		expectedError = errors.New("expected")

		cache = NewCache(WithConnector(func(context.Context, Settings) (Client, error) {
			return nil, expectedError
		}))
	)

	c, err := New("mongodb://localhost/db", WithCache(cache))
	require.NoError(err)
	assert.ErrorIs(c.Check(context.Background()), expectedError)
}

// testCheckUnreachable exercises the real driver against a port nothing listens on
func testCheckUnreachable(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		cache   = NewCache()
	)

	t.Cleanup(func() {
		cache.Close(context.Background())
	})

	c, err := New("mongodb://127.0.0.1:1/db?serverSelectionTimeoutMS=200&connectTimeoutMS=200", WithCache(cache))
	require.NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assert.Error(c.Check(ctx))
	assert.Equal(1, cache.Len())
}

// testCheckSRVLookupFailure shows that an unresolvable SRV name fails the check, not construction
func testCheckSRVLookupFailure(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		cache   = NewCache()
	)

	t.Cleanup(func() {
		cache.Close(context.Background())
	})

	c, err := New("mongodb+srv://cluster0.does-not-exist.invalid/admin", WithCache(cache))
	require.NoError(err)
	assert.Equal("admin", c.Database())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assert.Error(c.Check(ctx))
	assert.Zero(cache.Len())
}

func TestCheck(t *testing.T) {
	t.Run("Ping", testCheckPing)
	t.Run("ListDatabases", testCheckListDatabases)
	t.Run("ConnectError", testCheckConnectError)
	t.Run("Unreachable", testCheckUnreachable)
	t.Run("SRVLookupFailure", testCheckSRVLookupFailure)
}
