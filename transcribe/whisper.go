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

package transcribe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/log"
)

const outputFormat = "json"

type CommandRunner func(ctx context.Context, name string, args ...string) error

// Whisper runs the openai-whisper command line tool and loads the JSON
// result it writes next to the audio, or into OutputDir when set.
type Whisper struct {
	config        config.TranscribeConfig
	commandRunner CommandRunner
}

func NewWhisper(config *config.Config) *Whisper {
	return &Whisper{config: config.Transcribe}
}

// WithCommandRunner replaces process execution, mostly for tests.
func (w *Whisper) WithCommandRunner(runner CommandRunner) *Whisper {
	w.commandRunner = runner
	return w
}

func (w *Whisper) Transcribe(ctx context.Context, path string) (Transcript, error) {
	t, err := w.transcribe(ctx, path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return t, nil
}

func (w *Whisper) transcribe(ctx context.Context, path string) (Transcript, error) {
	if path == "" {
		return nil, errors.New("audio path required")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	outputDir := w.outputDir(path)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	args := w.buildArgs(path, outputDir)
	if err := w.run(ctx, w.config.Command, args...); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return loadTranscript(filepath.Join(outputDir, base+"."+outputFormat))
}

func (w *Whisper) outputDir(path string) string {
	if w.config.OutputDir != "" {
		return w.config.OutputDir
	}
	return filepath.Dir(path)
}

func (w *Whisper) buildArgs(path, outputDir string) []string {
	args := []string{
		path,
		"--model", w.config.Model,
		"--task", w.config.Task,
		"--output_format", outputFormat,
		"--output_dir", outputDir,
	}
	if w.config.Language != "" {
		args = append(args, "--language", w.config.Language)
	}
	if w.config.Device != "" {
		args = append(args, "--device", w.config.Device)
	}
	return args
}

func (w *Whisper) run(ctx context.Context, name string, args ...string) error {
	log.Printf("run %s\n", commandLine(name, args))
	if w.commandRunner != nil {
		return w.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, lastLine(output))
	}
	return nil
}

func commandLine(name string, args []string) string {
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, shellescape.Quote(name))
	for _, a := range args {
		quoted = append(quoted, shellescape.Quote(a))
	}
	return strings.Join(quoted, " ")
}

// lastLine keeps error messages to the tool's final complaint rather than
// its whole progress output.
func lastLine(output []byte) string {
	s := strings.TrimSpace(string(output))
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func loadTranscript(path string) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse whisper json: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("empty whisper json: %s", path)
	}
	return t, nil
}
