// Copyright (C) 2026 The Podscribe Authors.
//
// This file is part of Podscribe.
//
// Podscribe is free software: you can redistribute it and/or modify it under the
// terms of the GNU Affero General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// Podscribe is distributed in the hope that it will be useful, but WITHOUT ANY
// WARRANTY; without even the implied warranty of MERCHANTABILITY or FITNESS
// FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License for
// more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with Podscribe.  If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"context"
	"fmt"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/podcast"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Mongo struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongo connects to the configured server and checks it is reachable.
func NewMongo(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	clientOptions := options.Client().ApplyURI(cfg.Store.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return newMongo(client, cfg.Store.Database), nil
}

func newMongo(client *mongo.Client, database string) *Mongo {
	return &Mongo{
		client:   client,
		database: client.Database(database),
	}
}

func (m *Mongo) Index(ctx context.Context, collection string, doc *podcast.Document) (string, error) {
	res, err := m.database.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}
	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	default:
		return fmt.Sprint(id), nil
	}
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}
