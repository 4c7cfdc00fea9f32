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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (RUN,
// DEBUG, DISASM, etc.) and allows different flags for each mode.
//
// Usage is in layers. Each layer defines the flags valid for that point in
// the command line and, optionally, the list of sub-modes that can follow.
// For example:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "DEBUG", "DISASM")
//
//	p, err := md.Parse()
//	... handle ParseResult ...
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		verbose := md.AddBool("v", false, "verbose output")
//		p, err := md.Parse()
//		...
//	}
//
// Help messages (requested with -help) are written to the Output field,
// decorated with the mode path. Unrecognised flags print no help: they
// select the default sub-mode, or cause Parse() to return an error when
// there are no sub-modes.
package modalflag
