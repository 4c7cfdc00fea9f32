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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". It
// wraps termios methods in functions with friendlier names and remembers
// the terminal attributes so the terminal can be put back the way it was
// found.
package easyterm

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal is the main container for posix terminals. Usually embedded in
// other struct types.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr unix.Termios
	rawAttr unix.Termios
}

// Initialise the fields in the Terminal struct.
func (pt *Terminal) Initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil {
		return fmt.Errorf("easyterm Terminal requires an input file")
	}
	if outputFile == nil {
		return fmt.Errorf("easyterm Terminal requires an output file")
	}

	pt.input = inputFile
	pt.output = outputFile

	// prepare attributes for the terminal modes we'll be using
	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return err
	}
	pt.rawAttr = pt.canAttr
	termios.Cfmakeraw(&pt.rawAttr)

	// output processing stays on in raw mode so that newlines behave
	pt.rawAttr.Oflag = pt.canAttr.Oflag

	return nil
}

// CleanUp restores the terminal to canonical mode.
func (pt *Terminal) CleanUp() {
	pt.CanonicalMode()
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// RawMode puts terminal into raw mode.
func (pt *Terminal) RawMode() {
	_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.rawAttr)
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...interface{}) {
	pt.output.WriteString(fmt.Sprintf(s, a...))
	pt.output.Sync()
}

// Input file the terminal was initialised with.
func (pt *Terminal) Input() *os.File {
	return pt.input
}
