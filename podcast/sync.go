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

package podcast

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/defsub/podscribe/lib/client"
	"github.com/defsub/podscribe/lib/date"
	"github.com/defsub/podscribe/lib/rss"
	"github.com/defsub/podscribe/log"
)

var ErrNoFeed = errors.New("feed url required")

// Sync makes one pass over the feed. Feed fetch and parse failures end the
// run; episode failures are recorded in the summary and the run moves on.
func (p *Podcast) Sync(ctx context.Context) (*Summary, error) {
	episodes, err := p.episodes(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, e := range episodes {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		r := p.syncEpisode(ctx, e)
		switch r.Outcome {
		case Indexed:
			log.Printf("Transcription for %s successfully indexed in %s\n",
				r.Filename, p.config.Store.Collection)
		case DownloadFailed:
			log.Printf("Skipping %s due to download failure\n", r.Filename)
		case TranscriptionFailed:
			log.Printf("Skipping %s due to an error during transcription: %s\n",
				r.Filename, cause(r.Err))
		case PersistFailed:
			log.Printf("Skipping %s due to an error during indexing: %s\n",
				r.Filename, cause(r.Err))
		}
		summary.add(r)
	}
	return summary, nil
}

func (p *Podcast) episodes(ctx context.Context) ([]rss.Episode, error) {
	url := p.config.Feed.URL
	if url == "" {
		return nil, ErrNoFeed
	}
	body, err := p.fetcher.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	episodes, err := rss.Parse([]byte(rss.Sanitize(string(body))))
	if err != nil {
		return nil, err
	}
	log.Printf("found %d episodes in %s\n", len(episodes), client.Redact(url))
	return episodes, nil
}

func (p *Podcast) syncEpisode(ctx context.Context, e rss.Episode) Result {
	filename := client.Filename(e.URL)
	if filename == "" {
		filename = client.Redact(e.URL)
	}

	path, err := p.downloader.Download(ctx, e.URL, p.config.DownloadDir)
	if err != nil {
		log.Printf("Failed to download %s: %s\n", client.Redact(e.URL), err)
		return Result{Outcome: DownloadFailed, Filename: filename, Err: err}
	}
	filename = filepath.Base(path)

	t, err := p.transcriber.Transcribe(ctx, path)
	if err != nil {
		return Result{Outcome: TranscriptionFailed, Filename: filename, Err: err}
	}

	doc := NewDocument(filename, date.FromFilename(filename), t, e.Metadata, p.now())

	collection := p.config.Store.Collection
	id, err := p.store.Index(ctx, collection, doc)
	if err != nil {
		return Result{Outcome: PersistFailed, Filename: filename,
			Err: &PersistenceError{Collection: collection, Err: err}}
	}

	p.archive(ctx, path)
	return Result{Outcome: Indexed, Filename: filename, ID: id}
}

func (p *Podcast) archive(ctx context.Context, path string) {
	if p.archiver == nil {
		return
	}
	key, err := p.archiver.Upload(ctx, path)
	if err != nil {
		log.Printf("archive %s: %s\n", filepath.Base(path), err)
		return
	}
	log.Printf("archived %s to %s\n", filepath.Base(path), key)
}
