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

// Package podcast runs the feed to transcript pipeline: fetch the feed,
// download each episode, transcribe it and index the result.
package podcast

import (
	"context"
	"fmt"
	"time"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/lib/client"
	"github.com/defsub/podscribe/transcribe"
)

type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Downloader interface {
	Download(ctx context.Context, url, dir string) (string, error)
}

// Store persists documents into a named collection and returns the id it
// was stored under.
type Store interface {
	Index(ctx context.Context, collection string, doc *Document) (string, error)
	Close() error
}

// Archiver keeps a copy of downloaded audio somewhere durable.
type Archiver interface {
	Upload(ctx context.Context, path string) (string, error)
}

// PersistenceError is returned when the store rejects a document.
type PersistenceError struct {
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("index %s: %s", e.Collection, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

type Podcast struct {
	config      *config.Config
	fetcher     Fetcher
	downloader  Downloader
	transcriber transcribe.Transcriber
	store       Store
	archiver    Archiver
	now         func() time.Time
}

// NewPodcast wires a pipeline run with the HTTP client and downloader
// built from config. The store and transcriber are owned by the caller.
func NewPodcast(config *config.Config, store Store, transcriber transcribe.Transcriber) *Podcast {
	return &Podcast{
		config:      config,
		fetcher:     client.NewClient(config.FeedClient()),
		downloader:  client.NewDownloader(&config.Client),
		transcriber: transcriber,
		store:       store,
		now:         time.Now,
	}
}

func (p *Podcast) WithFetcher(f Fetcher) *Podcast {
	p.fetcher = f
	return p
}

func (p *Podcast) WithDownloader(d Downloader) *Podcast {
	p.downloader = d
	return p
}

func (p *Podcast) WithArchiver(a Archiver) *Podcast {
	p.archiver = a
	return p
}

func (p *Podcast) WithClock(now func() time.Time) *Podcast {
	p.now = now
	return p
}
