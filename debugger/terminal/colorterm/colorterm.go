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

// Package colorterm implements the Terminal interface for the debugger.
// Input is read with the terminal in raw mode, which allows command
// history, tab completion and ANSI colour output.
package colorterm

import (
	"bufio"
	"fmt"
	"os"

	"github.com/gopherrv/gopherrv/curated"
	"github.com/gopherrv/gopherrv/debugger/terminal"
	"github.com/gopherrv/gopherrv/debugger/terminal/colorterm/easyterm"
)

// ColorTerminal implements the terminal.Terminal interface.
type ColorTerminal struct {
	easyterm.Terminal

	reader         *bufio.Reader
	commandHistory []string
	tabCompletion  terminal.TabCompletion
}

// Initialise performs any setting up required for the terminal.
func (ct *ColorTerminal) Initialise() error {
	if err := ct.Terminal.Initialise(os.Stdin, os.Stdout); err != nil {
		return err
	}

	ct.commandHistory = make([]string, 0)
	ct.reader = bufio.NewReader(ct.Terminal.Input())

	return nil
}

// CleanUp performs any cleaning up required for the terminal.
func (ct *ColorTerminal) CleanUp() {
	ct.Print("\r")
	ct.Terminal.CleanUp()
}

// RegisterTabCompletion adds an implementation of TabCompletion to the
// ColorTerminal.
func (ct *ColorTerminal) RegisterTabCompletion(tc terminal.TabCompletion) {
	ct.tabCompletion = tc
}

// IsInteractive implements the terminal.Input interface.
func (ct *ColorTerminal) IsInteractive() bool {
	return true
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if style == terminal.StyleError {
		s = fmt.Sprintf("* %s", s)
	}

	ct.Print("\r%s%s%s\n", pen(style), s, ansiOff)
}

// TermRead implements the terminal.Input interface. The line editor
// supports backspace, command history with the cursor keys and tab
// completion.
func (ct *ColorTerminal) TermRead(prompt terminal.Prompt, events *terminal.ReadEvents) (string, error) {
	ct.RawMode()
	defer ct.CanonicalMode()

	input := make([]rune, 0, 255)
	history := len(ct.commandHistory)

	// pending input is stored when scrolling through history so nothing
	// typed so far is lost when the user returns to it
	var pending []rune

	redraw := func() {
		ct.Print("\r%s%s%s%s%s", ansiClearLine, penPrompt, prompt.String(), ansiOff, string(input))
	}
	redraw()

	for {
		// an interrupt may arrive at any point while we hold the terminal
		// in raw mode
		select {
		case sig := <-events.Signal:
			ct.Print("\n")
			if err := events.SignalHandler(sig); err != nil {
				return "", err
			}
		default:
		}

		r, _, err := ct.reader.ReadRune()
		if err != nil {
			return "", err
		}

		switch r {
		case easyterm.KeyInterrupt:
			ct.Print("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case easyterm.KeyCarriageReturn:
			ct.Print("\n")
			s := string(input)
			if s != "" {
				if len(ct.commandHistory) == 0 || ct.commandHistory[len(ct.commandHistory)-1] != s {
					ct.commandHistory = append(ct.commandHistory, s)
				}
			}
			if ct.tabCompletion != nil {
				ct.tabCompletion.Reset()
			}
			return s, nil

		case easyterm.KeyTab:
			if ct.tabCompletion != nil {
				input = []rune(ct.tabCompletion.Complete(string(input)))
				redraw()
			}

		case easyterm.KeyBackspace:
			if len(input) > 0 {
				input = input[:len(input)-1]
				redraw()
			}

		case easyterm.KeyEsc:
			r, _, err := ct.reader.ReadRune()
			if err != nil {
				return "", err
			}
			if r != easyterm.EscCursor {
				continue
			}

			r, _, err = ct.reader.ReadRune()
			if err != nil {
				return "", err
			}

			switch r {
			case easyterm.CursorUp:
				if history > 0 {
					if history == len(ct.commandHistory) {
						pending = input
					}
					history--
					input = []rune(ct.commandHistory[history])
					redraw()
				}
			case easyterm.CursorDown:
				if history < len(ct.commandHistory) {
					history++
					if history == len(ct.commandHistory) {
						input = pending
					} else {
						input = []rune(ct.commandHistory[history])
					}
					redraw()
				}
			}

		default:
			if r >= 32 && r != 127 {
				input = append(input, r)
				ct.Print("%c", r)
			}
		}
	}
}
