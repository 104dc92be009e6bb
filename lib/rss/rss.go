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

package rss

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"golang.org/x/net/html/charset"
)

const NamespaceITunes = "http://www.itunes.com/dtds/podcast-1.0.dtd"

// ParseError is returned when feed content is not well-formed XML.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse feed: %s", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Metadata holds the raw item fields. A nil field means the element was
// absent or empty.
type Metadata struct {
	Title       *string
	Link        *string
	PubDate     *string
	Description *string
	Subtitle    *string
	Author      *string
	Summary     *string
}

type Episode struct {
	URL      string
	Metadata Metadata
}

type Enclosure struct {
	URL    string
	Type   string
	Length string
}

type Item struct {
	Metadata
	Enclosure *Enclosure
}

// UnmarshalXML reads the first occurrence of each known child. Plain RSS
// elements must be un-namespaced so that itunes:title and friends don't
// shadow them.
func (i *Item) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	seen := make(map[xml.Name]bool)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := i.element(d, t, seen); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (i *Item) element(d *xml.Decoder, t xml.StartElement, seen map[xml.Name]bool) error {
	if seen[t.Name] {
		return d.Skip()
	}
	seen[t.Name] = true
	switch t.Name.Space {
	case "":
		switch t.Name.Local {
		case "title":
			return first(&i.Title, d, t)
		case "link":
			return first(&i.Link, d, t)
		case "pubDate":
			return first(&i.PubDate, d, t)
		case "description":
			return first(&i.Description, d, t)
		case "enclosure":
			i.Enclosure = enclosure(t)
		}
	case NamespaceITunes:
		switch t.Name.Local {
		case "subtitle":
			return first(&i.Subtitle, d, t)
		case "author":
			return first(&i.Author, d, t)
		case "summary":
			return first(&i.Summary, d, t)
		}
	}
	return d.Skip()
}

// first stores the text of the first occurrence of an element. An empty
// first occurrence leaves dst nil even if a later one has text.
func first(dst **string, d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	if s != "" {
		*dst = &s
	}
	return nil
}

func enclosure(t xml.StartElement) *Enclosure {
	var e Enclosure
	for _, a := range t.Attr {
		if a.Name.Space != "" {
			continue
		}
		switch a.Name.Local {
		case "url":
			e.URL = a.Value
		case "type":
			e.Type = a.Value
		case "length":
			e.Length = a.Value
		}
	}
	return &e
}

type Channel struct {
	Items []Item `xml:"item"`
}

type Rss struct {
	XMLName  xml.Name
	Channels []Channel `xml:"channel"`
}

// Parse decodes sanitized feed content and returns one episode per item
// with an enclosure url, in document order.
func Parse(data []byte) ([]Episode, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	var result Rss
	if err := d.Decode(&result); err != nil {
		return nil, &ParseError{Err: err}
	}

	var episodes []Episode
	for _, c := range result.Channels {
		for _, i := range c.Items {
			if i.Enclosure == nil || i.Enclosure.URL == "" {
				continue
			}
			episodes = append(episodes, Episode{
				URL:      i.Enclosure.URL,
				Metadata: i.Metadata,
			})
		}
	}
	return episodes, nil
}
