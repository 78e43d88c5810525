// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package mongocheck

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is the behavior a check requires of a database client.
type Client interface {
	// Ping runs the ping command against the given database.
	Ping(ctx context.Context, database string) error

	// ListDatabaseNames enumerates the databases visible to the client's credentials.
	ListDatabaseNames(ctx context.Context) ([]string, error)

	// Disconnect releases the client's pooled connections.
	Disconnect(ctx context.Context) error
}

// Connector creates a Client for validated settings.
type Connector func(context.Context, Settings) (Client, error)

// Connect is the default Connector, backed by the official driver.  The driver connects
// lazily, so errors here only concern the client options.
func Connect(ctx context.Context, s Settings) (Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI()))
	if err != nil {
		return nil, err
	}

	return driverClient{client: client}, nil
}

type driverClient struct {
	client *mongo.Client
}

func (dc driverClient) Ping(ctx context.Context, database string) error {
	return dc.client.Database(database).RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (dc driverClient) ListDatabaseNames(ctx context.Context) ([]string, error) {
	return dc.client.ListDatabaseNames(ctx, bson.D{})
}

func (dc driverClient) Disconnect(ctx context.Context) error {
	return dc.client.Disconnect(ctx)
}
