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

// Package debugger implements the interactive step-mode session around a
// loaded machine. The session reads commands through an implementation of
// the terminal.Terminal interface; the HELP command lists the command
// set.
//
// The debugger owns the machine for the duration of the session. It is
// not an external process; it drives the same Step() function as the run
// mode, one instruction at a time.
package debugger
