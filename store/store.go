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

// Package store holds the document store backends transcripts are indexed
// into.
package store

import (
	"context"
	"fmt"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/podcast"
)

// NewStore opens the backend named by the store driver. The connection is
// kept until Close.
func NewStore(ctx context.Context, cfg *config.Config) (podcast.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverBleve:
		return NewBleve(cfg), nil
	case config.DriverMongo:
		return NewMongo(ctx, cfg)
	case config.DriverSqlite, config.DriverPostgres, config.DriverMySQL:
		return NewSQL(cfg)
	}
	return nil, fmt.Errorf("store driver %q not supported", cfg.Store.Driver)
}
