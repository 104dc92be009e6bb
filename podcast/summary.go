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
	"fmt"
	"io"
)

func (s *Summary) add(r Result) {
	if r.Outcome == Indexed {
		s.Indexed++
		return
	}
	s.Skipped = append(s.Skipped, Skip{Filename: r.Filename, Reason: r.Reason()})
}

// Print writes the end of run report.
func (s *Summary) Print(w io.Writer) error {
	if len(s.Skipped) == 0 {
		_, err := fmt.Fprintln(w, "\nAll episodes processed successfully without any skips.")
		return err
	}
	if _, err := fmt.Fprintln(w, "\nSummary of Skipped Episodes:"); err != nil {
		return err
	}
	for _, skip := range s.Skipped {
		if _, err := fmt.Fprintf(w, "Filename: %s - Reason: %s\n", skip.Filename, skip.Reason); err != nil {
			return err
		}
	}
	return nil
}
