// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) Ping(ctx context.Context, database string) error {
	return m.Called(ctx, database).Error(0)
}

func (m *mockClient) ListDatabaseNames(ctx context.Context) ([]string, error) {
	arguments := m.Called(ctx)
	first, _ := arguments.Get(0).([]string)
	return first, arguments.Error(1)
}

func (m *mockClient) Disconnect(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// connectTo returns a Connector that always yields the given client
func connectTo(client Client) Connector {
	return func(context.Context, Settings) (Client, error) {
		return client, nil
	}
}
