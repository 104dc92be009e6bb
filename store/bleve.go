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
	"sync"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/lib/search"
	"github.com/defsub/podscribe/podcast"
	"github.com/google/uuid"
)

// Bleve keeps one local index per collection, opened on first use.
type Bleve struct {
	config  *config.Config
	mu      sync.Mutex
	indexes map[string]*search.Search
}

func NewBleve(cfg *config.Config) *Bleve {
	return &Bleve{
		config:  cfg,
		indexes: make(map[string]*search.Search),
	}
}

// NewSearch returns a search over collection indexes with the document
// keyword fields mapped for exact matching.
func NewSearch(cfg *config.Config) *search.Search {
	s := search.NewSearch(cfg)
	s.Keywords = []string{
		podcast.FieldFilename,
		podcast.FieldDate,
	}
	return s
}

func (b *Bleve) open(collection string) (*search.Search, error) {
	if s, ok := b.indexes[collection]; ok {
		return s, nil
	}
	s := NewSearch(b.config)
	if err := s.Open(collection); err != nil {
		return nil, err
	}
	b.indexes[collection] = s
	return s, nil
}

func (b *Bleve) Index(ctx context.Context, collection string, doc *podcast.Document) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, err := b.open(collection)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.Index(id, doc); err != nil {
		return "", err
	}
	return id, nil
}

func (b *Bleve) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var first error
	for k, s := range b.indexes {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
		delete(b.indexes, k)
	}
	return first
}
