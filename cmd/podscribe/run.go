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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/lib/bucket"
	"github.com/defsub/podscribe/lib/client"
	"github.com/defsub/podscribe/log"
	"github.com/defsub/podscribe/podcast"
	"github.com/defsub/podscribe/store"
	"github.com/defsub/podscribe/transcribe"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
)

const lockFile = ".podscribe.lock"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "transcribe and index the feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

var runOptions struct {
	feed        string
	downloadDir string
	collection  string
	model       string
}

func applyRunOptions(cfg *config.Config) {
	if runOptions.feed != "" {
		cfg.Feed.URL = runOptions.feed
	}
	if runOptions.downloadDir != "" {
		cfg.DownloadDir = runOptions.downloadDir
	}
	if runOptions.collection != "" {
		cfg.Store.Collection = runOptions.collection
	}
	if runOptions.model != "" {
		cfg.Transcribe.Model = runOptions.model
	}
}

func run(ctx context.Context) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}
	applyRunOptions(cfg)
	if cfg.Feed.URL == "" {
		return errors.New("no feed url, set Feed.URL or use --feed")
	}

	if err := os.MkdirAll(cfg.DownloadDir, 0o755); err != nil {
		return err
	}
	lock := flock.New(filepath.Join(cfg.DownloadDir, lockFile))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another run is using %s", cfg.DownloadDir)
	}
	defer lock.Unlock()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	s, err := store.NewStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	p := podcast.NewPodcast(cfg, s, transcribe.NewWhisper(cfg))
	if cfg.Archive.Enabled() {
		b, err := bucket.Open(cfg.Archive)
		if err != nil {
			return err
		}
		p.WithArchiver(b)
	}

	log.Printf("syncing %s\n", client.Redact(cfg.Feed.URL))
	summary, err := p.Sync(ctx)
	if summary != nil {
		if perr := summary.Print(os.Stdout); perr != nil && err == nil {
			err = perr
		}
	}
	return err
}

func init() {
	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file")
	runCmd.Flags().StringVarP(&runOptions.feed, "feed", "f", "", "feed url")
	runCmd.Flags().StringVarP(&runOptions.downloadDir, "download-dir", "d", "", "download directory")
	runCmd.Flags().StringVar(&runOptions.collection, "collection", "", "index collection")
	runCmd.Flags().StringVarP(&runOptions.model, "model", "m", "", "whisper model")
	rootCmd.AddCommand(runCmd)
}
