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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/defsub/podscribe/config"
	"github.com/defsub/podscribe/log"
	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"
)

const (
	DirectiveMaxAge = "max-age"
)

var (
	HeaderUserAgent    = http.CanonicalHeaderKey("User-Agent")
	HeaderCacheControl = http.CanonicalHeaderKey("Cache-Control")
)

// FetchError is returned when a remote resource could not be retrieved,
// either because the server answered with a non-success status or because
// the request itself failed. URL never contains credentials.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("http error %d: %s", e.StatusCode, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Redact masks any password embedded in the URL.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Redacted()
}

type Client struct {
	client    *http.Client
	useCache  bool
	userAgent string
	maxAge    time.Duration
}

func NewClient(config *config.ClientConfig) *Client {
	c := Client{}
	c.userAgent = config.UserAgent
	c.useCache = config.UseCache
	if c.useCache {
		c.maxAge = config.MaxAge
		transport := httpcache.NewTransport(diskcache.New(config.CacheDir))
		c.client = transport.Client()
		log.Printf("using cache dir %s\n", config.CacheDir)
	} else {
		c.client = &http.Client{}
	}
	return &c
}

func (c *Client) doGet(ctx context.Context, urlStr string) (*http.Response, error) {
	redacted := Redact(urlStr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &FetchError{URL: redacted, Err: err}
	}

	req.Header.Set(HeaderUserAgent, c.userAgent)
	if c.useCache && c.maxAge > 0 {
		req.Header.Set(HeaderCacheControl,
			fmt.Sprintf("%s=%d", DirectiveMaxAge, int(c.maxAge.Seconds())))
	}

	log.Printf("get %s\n", redacted)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: redacted, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		drainAndClose(resp.Body)
		return nil, &FetchError{URL: redacted, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// Get returns the body of a successful GET. Credentials embedded in the URL
// are sent as basic auth.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: Redact(url), StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

func drainAndClose(rc io.ReadCloser) {
	if rc == nil {
		return
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
