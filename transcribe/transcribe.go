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

// Package transcribe turns downloaded audio into transcripts using an
// external speech-to-text engine.
package transcribe

import (
	"context"
	"fmt"
)

// Transcript is the engine's result as-is. For whisper it carries text,
// segments and language.
type Transcript map[string]interface{}

type Transcriber interface {
	Transcribe(ctx context.Context, path string) (Transcript, error)
}

// Error reports a failed transcription of the audio file at Path.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transcribe %s: %s", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Text returns the transcript's text, or "" when there is none.
func (t Transcript) Text() string {
	if s, ok := t["text"].(string); ok {
		return s
	}
	return ""
}
