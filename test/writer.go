// This file is part of GopherRV.
//
// GopherRV is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherRV is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherRV.  If not, see <https://www.gnu.org/licenses/>.

package test

import "strings"

// Writer is an implementation of io.Writer that collects everything written
// to it. Compare() can be used to test the contents.
type Writer struct {
	buffer strings.Builder
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	return w.buffer.Write(p)
}

func (w *Writer) String() string {
	return w.buffer.String()
}

// Reset empties the writer's buffer.
func (w *Writer) Reset() {
	w.buffer.Reset()
}

// Compare the contents of the writer with the supplied string.
func (w *Writer) Compare(s string) bool {
	return w.buffer.String() == s
}
