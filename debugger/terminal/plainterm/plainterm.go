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

// Package plainterm implements the Terminal interface for the debugger.
// It's as simple as simple can be and offers no special features. The
// terminal is left in whatever mode it started in, probably cooked mode.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gopherrv/gopherrv/debugger/terminal"
)

// PlainTerminal is the default, most basic terminal interface.
type PlainTerminal struct {
	input  *bufio.Reader
	output io.Writer
}

// Initialise performs any setting up required for the terminal.
func (pt *PlainTerminal) Initialise() error {
	pt.input = bufio.NewReader(os.Stdin)
	pt.output = os.Stdout
	return nil
}

// CleanUp performs any cleaning up required for the terminal.
func (pt *PlainTerminal) CleanUp() {
}

// RegisterTabCompletion implements the terminal.Terminal interface. Tab
// completion is not supported by this terminal type.
func (pt *PlainTerminal) RegisterTabCompletion(terminal.TabCompletion) {
}

// IsInteractive implements the terminal.Input interface.
func (pt *PlainTerminal) IsInteractive() bool {
	return true
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if style == terminal.StyleError {
		s = fmt.Sprintf("* %s", s)
	}

	pt.output.Write([]byte(s))
	pt.output.Write([]byte("\n"))
}

// TermRead implements the terminal.Input interface.
func (pt *PlainTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	pt.output.Write([]byte(prompt.String()))

	s, err := pt.input.ReadString('\n')
	if err != nil {
		return "", err
	}

	// an interrupt may have arrived while we were waiting for input
	select {
	case sig := <-events.Signal:
		return "", events.SignalHandler(sig)
	default:
	}

	return strings.TrimSpace(s), nil
}
