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

// Package curated is the error mechanism used throughout GopherRV. Errors
// are created with the Errorf() function, which takes a pattern string and
// values in the manner of fmt.Errorf().
//
// The pattern string is the important part: packages declare the patterns
// they raise as constants, and callers can test for a particular fault with
// the Is() and Has() functions without string matching on the formatted
// message. For example, the memory package declares:
//
//	AccessError = "memory: address out of bounds: %08x (%d byte access)"
//
// and a caller that wants to catch out-of-bounds accesses specifically can
// say:
//
//	if curated.Has(err, memory.AccessError) {
//		...
//	}
//
// The formatted messages are deliberately terse and chain together when an
// error is wrapped by another Errorf() call. The Error() function removes
// the first part of the message when the second part repeats it; parts
// further along the chain are not compared.
package curated
