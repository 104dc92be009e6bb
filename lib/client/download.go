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

package client

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/cavaliercoder/grab"
	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/log"
	"github.com/dustin/go-humanize"
)

var ErrNoFilename = errors.New("no filename in url")

// Downloader saves remote audio files into a local directory.
type Downloader struct {
	client *grab.Client
}

func NewDownloader(config *config.ClientConfig) *Downloader {
	client := grab.NewClient()
	client.UserAgent = config.UserAgent
	return &Downloader{client: client}
}

// Filename returns the final path segment of rawURL, or an empty string if
// there isn't one.
func Filename(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}

// Download fetches rawURL into dir, named by the URL's final path segment,
// and returns the local path. Nothing is left behind on failure.
func (d *Downloader) Download(ctx context.Context, rawURL, dir string) (string, error) {
	redacted := Redact(rawURL)
	filename := Filename(rawURL)
	if filename == "" {
		return "", &FetchError{URL: redacted, Err: ErrNoFilename}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filename)

	req, err := grab.NewRequest(dst, rawURL)
	if err != nil {
		return "", &FetchError{URL: redacted, Err: err}
	}
	req.NoResume = true
	req = req.WithContext(ctx)

	log.Printf("download %s\n", redacted)
	resp := d.client.Do(req)
	if err := resp.Err(); err != nil {
		os.Remove(dst)
		status := 0
		if resp.HTTPResponse != nil {
			status = resp.HTTPResponse.StatusCode
		}
		if status != 0 && (status < 200 || status > 299) {
			return "", &FetchError{URL: redacted, StatusCode: status}
		}
		return "", &FetchError{URL: redacted, StatusCode: status, Err: err}
	}

	if fi, err := os.Stat(resp.Filename); err == nil {
		log.Printf("saved %s (%s)\n", resp.Filename, humanize.Bytes(uint64(fi.Size())))
	}
	return resp.Filename, nil
}
