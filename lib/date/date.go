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

package date

import (
	"regexp"
	"time"
)

const (
	// Day is the layout for document dates.
	Day = "2006-01-02"

	filenameLayout = "010206"
)

var filenameRegexp = regexp.MustCompile(`^dv_(\d{6})_\d{2}\.mp3$`)

// FromFilename returns the date embedded in episode file names like
// dv_MMDDYY_NN.mp3. Two digit years 69-99 are 19xx and 00-68 are 20xx. The
// zero time is returned when the name doesn't match or the date is invalid.
func FromFilename(name string) (t time.Time) {
	m := filenameRegexp.FindStringSubmatch(name)
	if m == nil {
		return t
	}
	t, err := time.Parse(filenameLayout, m[1])
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatDay formats t as yyyy-mm-dd, or "" for the zero time.
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Day)
}
