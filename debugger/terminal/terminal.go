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

// Package terminal defines the operations required by the debugger's
// command line interface. There are two implementations in the
// sub-packages: plainterm, which leaves the terminal in whatever mode it
// started in, and colorterm, which puts the terminal in raw mode for line
// editing, history and tab completion.
package terminal

import "os"

// Prompt is the text shown when the terminal is waiting for input.
type Prompt struct {
	Content string
}

func (p Prompt) String() string {
	return p.Content
}

// Style is used to hint at the formatting of a line of output.
type Style int

// The list of output styles.
const (
	StyleOutput Style = iota
	StyleHelp
	StyleFeedback
	StyleError
)

// ReadEvents is the collection of channels the terminal should monitor
// while waiting for input.
type ReadEvents struct {
	// interrupt signals from the operating system
	Signal chan os.Signal

	// handler for the above. the returned error is passed to the input
	// loop
	SignalHandler func(os.Signal) error
}

// Input defines the operations required by an interface that allows input.
type Input interface {
	// TermRead returns the next line of user input, without the
	// terminating newline.
	TermRead(prompt Prompt, events *ReadEvents) (string, error)

	// IsInteractive returns true for implementations that expect a human
	// at the other end.
	IsInteractive() bool
}

// Output defines the operations required by an interface that allows
// output.
type Output interface {
	TermPrintLine(style Style, s string)
}

// Terminal defines the operations required by the debugger's command line
// interface.
type Terminal interface {
	Input
	Output

	// Initialise the terminal. not all implementations need to do
	// anything
	Initialise() error

	// Restore the terminal to its original state, if possible
	CleanUp()

	// Register a tab completion implementation. not all implementations
	// need to respond meaningfully
	RegisterTabCompletion(TabCompletion)
}

// TabCompletion defines the operations required for tab completion.
type TabCompletion interface {
	Complete(input string) string
	Reset()
}

// UserInterrupt is returned by TermRead() when the user has interrupted
// the session (ctrl-c).
const UserInterrupt = "user interrupt"
