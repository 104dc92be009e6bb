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
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/podcast"
	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Transcript is the row stored for a document. The transcription and its
// history are kept as JSON text.
type Transcript struct {
	ID            string  `gorm:"primaryKey;size:36"`
	Filename      string  `gorm:"size:255"`
	Date          *string `gorm:"size:10"`
	Timestamp     time.Time
	Title         *string
	Link          *string
	PubDate       *string
	Description   *string
	Subtitle      *string
	Author        *string
	Summary       *string
	Transcription string
	History       string
}

// SQL stores documents with gorm, one table per collection.
type SQL struct {
	db       *gorm.DB
	mu       sync.Mutex
	migrated map[string]bool
}

func NewSQL(cfg *config.Config) (*SQL, error) {
	var dialector gorm.Dialector
	source := cfg.Store.DB.Source
	switch cfg.Store.Driver {
	case config.DriverSqlite:
		dialector = sqlite.Open(source)
	case config.DriverPostgres:
		dialector = postgres.Open(source)
	case config.DriverMySQL:
		dialector = mysql.Open(source)
	default:
		return nil, fmt.Errorf("sql driver %q not supported", cfg.Store.Driver)
	}
	db, err := gorm.Open(dialector, cfg.Store.DB.GormConfig())
	if err != nil {
		return nil, err
	}
	return &SQL{db: db, migrated: make(map[string]bool)}, nil
}

func (s *SQL) table(ctx context.Context, collection string) (*gorm.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.db.WithContext(ctx).Table(collection)
	if !s.migrated[collection] {
		if err := tx.AutoMigrate(&Transcript{}); err != nil {
			return nil, err
		}
		s.migrated[collection] = true
	}
	return s.db.WithContext(ctx).Table(collection), nil
}

func (s *SQL) Index(ctx context.Context, collection string, doc *podcast.Document) (string, error) {
	row, err := newTranscript(doc)
	if err != nil {
		return "", err
	}
	tx, err := s.table(ctx, collection)
	if err != nil {
		return "", err
	}
	if err := tx.Create(row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

// Document loads a stored document by id.
func (s *SQL) Document(ctx context.Context, collection, id string) (*podcast.Document, error) {
	tx, err := s.table(ctx, collection)
	if err != nil {
		return nil, err
	}
	var row Transcript
	if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	return row.document()
}

func (s *SQL) Close() error {
	conn, err := s.db.DB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func newTranscript(doc *podcast.Document) (*Transcript, error) {
	transcription, err := json.Marshal(doc.Transcription)
	if err != nil {
		return nil, fmt.Errorf("encode transcription: %w", err)
	}
	history, err := json.Marshal(doc.History)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	return &Transcript{
		ID:            uuid.NewString(),
		Filename:      doc.Filename,
		Date:          doc.Date,
		Timestamp:     doc.Timestamp,
		Title:         doc.Title,
		Link:          doc.Link,
		PubDate:       doc.PubDate,
		Description:   doc.Description,
		Subtitle:      doc.Subtitle,
		Author:        doc.Author,
		Summary:       doc.Summary,
		Transcription: string(transcription),
		History:       string(history),
	}, nil
}

func (t Transcript) document() (*podcast.Document, error) {
	doc := &podcast.Document{
		Filename:    t.Filename,
		Date:        t.Date,
		Timestamp:   t.Timestamp,
		Title:       t.Title,
		Link:        t.Link,
		PubDate:     t.PubDate,
		Description: t.Description,
		Subtitle:    t.Subtitle,
		Author:      t.Author,
		Summary:     t.Summary,
	}
	if err := json.Unmarshal([]byte(t.Transcription), &doc.Transcription); err != nil {
		return nil, fmt.Errorf("decode transcription: %w", err)
	}
	if err := json.Unmarshal([]byte(t.History), &doc.History); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return doc, nil
}
