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
	"encoding/xml"
	"strconv"
	"strings"
	"unicode"
)

const (
	cdataStart   = "<![CDATA["
	cdataEnd     = "]]>"
	commentStart = "<!--"
	commentEnd   = "-->"
	piStart      = "<?"
	piEnd        = "?>"

	maxReference = 32
)

var predefined = map[string]bool{
	"amp":  true,
	"lt":   true,
	"gt":   true,
	"quot": true,
	"apos": true,
}

// Sanitize escapes bare ampersands so feeds with unescaped free text parse as
// XML. References the parser understands are left alone, as is anything
// inside CDATA sections, comments and processing instructions, so applying
// Sanitize twice gives the same result as applying it once.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch s[i] {
		case '<':
			n := literalSpan(s[i:])
			b.WriteString(s[i : i+n])
			i += n
		case '&':
			if isReference(s[i:]) {
				b.WriteByte('&')
			} else {
				b.WriteString("&amp;")
			}
			i++
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

// literalSpan returns the length of the section at the start of s that must
// be copied verbatim. s starts with '<'.
func literalSpan(s string) int {
	for _, m := range [][2]string{
		{cdataStart, cdataEnd},
		{commentStart, commentEnd},
		{piStart, piEnd},
	} {
		if !strings.HasPrefix(s, m[0]) {
			continue
		}
		end := strings.Index(s[len(m[0]):], m[1])
		if end < 0 {
			return len(s)
		}
		return len(m[0]) + end + len(m[1])
	}
	return 1
}

// isReference reports whether s starts with an entity or character
// reference the decoder will accept. s starts with '&'.
func isReference(s string) bool {
	end := strings.IndexByte(s, ';')
	if end < 2 || end > maxReference {
		return false
	}
	name := s[1:end]
	if name[0] == '#' {
		return isCharReference(name[1:])
	}
	if predefined[name] {
		return true
	}
	_, ok := xml.HTMLEntity[name]
	return ok
}

func isCharReference(num string) bool {
	base := 10
	if strings.HasPrefix(num, "x") {
		base = 16
		num = num[1:]
	}
	if num == "" {
		return false
	}
	n, err := strconv.ParseUint(num, base, 32)
	return err == nil && isXMLChar(rune(n))
}

// isXMLChar reports whether r is allowed in an XML document. References to
// anything else are rejected by the decoder.
func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= unicode.MaxRune
}
