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

package search

import (
	"errors"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/defsub/podscribe/config"
)

type FieldMap map[string]interface{}

type Hit struct {
	ID     string
	Score  float64
	Fields FieldMap
}

type Search struct {
	config   config.SearchConfig
	index    bleve.Index
	Keywords []string
}

func NewSearch(config *config.Config) *Search {
	return &Search{config: config.Search}
}

// Open creates or opens the index <BleveDir>/<name>.bleve. Keywords only
// apply when the index is created.
func (s *Search) Open(name string) error {
	mapping := bleve.NewIndexMapping()
	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name
	keywordMapping := bleve.NewDocumentMapping()
	for _, v := range s.Keywords {
		keywordMapping.AddFieldMappingsAt(v, keywordFieldMapping)
	}
	mapping.AddDocumentMapping("_default", keywordMapping)

	path := filepath.Join(s.config.BleveDir, name+".bleve")
	index, err := bleve.New(path, mapping)
	if errors.Is(err, bleve.ErrorIndexPathExists) {
		index, err = bleve.Open(path)
		if err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	s.index = index
	return nil
}

func (s *Search) Close() error {
	if s.index == nil {
		return nil
	}
	return s.index.Close()
}

// see https://blevesearch.com/docs/Query-String-Query/
func (s *Search) Search(q string, limit int) ([]Hit, error) {
	query := bleve.NewQueryStringQuery(q)
	searchRequest := bleve.NewSearchRequest(query)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}
	searchResult, err := s.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		hits = append(hits, Hit{
			ID:     hit.ID,
			Score:  hit.Score,
			Fields: FieldMap(hit.Fields),
		})
	}
	return hits, nil
}

func (s *Search) Index(id string, doc interface{}) error {
	return s.index.Index(id, doc)
}

func (s *Search) Count() (uint64, error) {
	return s.index.DocCount()
}
