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

// Package test contains helper functions to remove common boilerplate from
// the project's test suites. The Equate() function compares a value against
// an expected value; ExpectedSuccess() and ExpectedFailure() test boolean
// and error values for the obvious conditions.
//
// The Writer type is an implementation of io.Writer that collects writes
// into a buffer for later comparison. Useful for testing functions that
// format output.
package test
