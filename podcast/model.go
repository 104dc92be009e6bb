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
	"time"

	"github.com/defsub/podscribe/lib/date"
	"github.com/defsub/podscribe/lib/rss"
	"github.com/defsub/podscribe/transcribe"
)

const (
	FieldFilename      = "filename"
	FieldDate          = "date"
	FieldTranscription = "transcription"
	FieldTimestamp     = "timestamp"
	FieldTitle         = "title"
	FieldLink          = "link"
	FieldPubDate       = "pubDate"
	FieldDescription   = "description"
	FieldSubtitle      = "itunes_subtitle"
	FieldAuthor        = "itunes_author"
	FieldSummary       = "itunes_summary"
	FieldHistory       = "transcription_history"

	NoEdits      = "No edits yet"
	EditorSystem = "System"
)

type Edit struct {
	Text      string    `json:"text" bson:"text"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	EditedBy  string    `json:"edited_by" bson:"edited_by"`
}

// Document is the stored record for one transcribed episode. Nil fields
// are persisted as null.
type Document struct {
	Filename      string                `json:"filename" bson:"filename"`
	Date          *string               `json:"date" bson:"date"` // yyyy-mm-dd
	Transcription transcribe.Transcript `json:"transcription" bson:"transcription"`
	Timestamp     time.Time             `json:"timestamp" bson:"timestamp"`
	Title         *string               `json:"title" bson:"title"`
	Link          *string               `json:"link" bson:"link"`
	PubDate       *string               `json:"pubDate" bson:"pubDate"`
	Description   *string               `json:"description" bson:"description"`
	Subtitle      *string               `json:"itunes_subtitle" bson:"itunes_subtitle"`
	Author        *string               `json:"itunes_author" bson:"itunes_author"`
	Summary       *string               `json:"itunes_summary" bson:"itunes_summary"`
	History       []Edit                `json:"transcription_history" bson:"transcription_history"`
}

// NewDocument builds the record for a transcribed episode. A zero day
// becomes a null date. The history starts with a single system entry.
func NewDocument(filename string, day time.Time, t transcribe.Transcript,
	meta rss.Metadata, now time.Time) *Document {
	doc := &Document{
		Filename:      filename,
		Transcription: t,
		Timestamp:     now,
		Title:         meta.Title,
		Link:          meta.Link,
		PubDate:       meta.PubDate,
		Description:   meta.Description,
		Subtitle:      meta.Subtitle,
		Author:        meta.Author,
		Summary:       meta.Summary,
		History: []Edit{{
			Text:      NoEdits,
			Timestamp: now,
			EditedBy:  EditorSystem,
		}},
	}
	if !day.IsZero() {
		d := date.FormatDay(day)
		doc.Date = &d
	}
	return doc
}

type Outcome int

const (
	Indexed Outcome = iota
	DownloadFailed
	TranscriptionFailed
	PersistFailed
)

// Result is the outcome of processing one episode. ID is set when indexed,
// Err otherwise.
type Result struct {
	Outcome  Outcome
	Filename string
	ID       string
	Err      error
}

// Reason returns the skip reason for a failed result.
func (r Result) Reason() string {
	switch r.Outcome {
	case DownloadFailed:
		return "Download failure"
	case TranscriptionFailed:
		return "Transcription error: " + cause(r.Err)
	case PersistFailed:
		return "Persistence error: " + cause(r.Err)
	}
	return ""
}

// cause strips the outer wrapper added by the failing step so the reason
// reads like the underlying complaint.
func cause(err error) string {
	if err == nil {
		return "unknown"
	}
	if u, ok := err.(interface{ Unwrap() error }); ok {
		if inner := u.Unwrap(); inner != nil {
			return inner.Error()
		}
	}
	return err.Error()
}

type Skip struct {
	Filename string
	Reason   string
}

type Summary struct {
	Indexed int
	Skipped []Skip
}
