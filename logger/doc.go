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

// Package logger is the central log facility. Log entries are accumulated
// in memory and can be written out on demand with Write() or Tail(). With
// SetEcho() entries are additionally forwarded to an io.Writer as they
// arrive, which is how the -log command line flag is implemented.
//
// Entries are tagged with the name of the sub-system making the entry.
// Repeated identical entries are folded into a single entry with a repeat
// count, which matters for a machine that can log from inside its step
// loop.
package logger
