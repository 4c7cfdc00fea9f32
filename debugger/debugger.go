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

package debugger

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/gopherrv/gopherrv/curated"
	"github.com/gopherrv/gopherrv/debugger/terminal"
	"github.com/gopherrv/gopherrv/disassembly"
	"github.com/gopherrv/gopherrv/hardware"
)

// Debugger is the interactive step-mode session.
type Debugger struct {
	vm   *hardware.VM
	term terminal.Terminal
	dsm  *disassembly.Disassembly

	breakpoints map[uint32]bool

	events *terminal.ReadEvents

	// the session ends when running is false
	running bool
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type. The machine should have a program loaded.
func NewDebugger(vm *hardware.VM) *Debugger {
	return &Debugger{
		vm:          vm,
		dsm:         disassembly.FromProgram(vm.Prog),
		breakpoints: make(map[uint32]bool),
	}
}

// Start the debugging session. Returns when the user quits (QUIT or
// ctrl-c at the prompt) or when reading from the terminal fails. Errors
// from commands, including machine faults, are printed and the session
// continues; a halted machine does not end the session.
func (dbg *Debugger) Start(term terminal.Terminal) error {
	dbg.term = term

	if err := dbg.term.Initialise(); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	defer dbg.term.CleanUp()

	dbg.term.RegisterTabCompletion(newTabCompletion())

	// ctrl-c ends a running machine or, at the prompt, the session
	dbg.events = &terminal.ReadEvents{
		Signal: make(chan os.Signal, 1),
		SignalHandler: func(sig os.Signal) error {
			return curated.Errorf(terminal.UserInterrupt)
		},
	}
	signal.Notify(dbg.events.Signal, os.Interrupt)
	defer signal.Stop(dbg.events.Signal)

	dbg.term.TermPrintLine(terminal.StyleFeedback, "type HELP for the list of commands")
	dbg.printLocation()

	dbg.running = true
	for dbg.running {
		input, err := dbg.term.TermRead(dbg.prompt(), dbg.events)
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) {
				return nil
			}
			return err
		}

		if err := dbg.parseInput(input); err != nil {
			dbg.term.TermPrintLine(terminal.StyleError, err.Error())
		}
	}

	return nil
}

// prompt shows the address of the next instruction to be executed.
func (dbg *Debugger) prompt() terminal.Prompt {
	status := ""
	if dbg.vm.CPU.Halted {
		status = " halted"
	} else if dbg.vm.CPU.WFI {
		status = " wfi"
	}
	return terminal.Prompt{Content: fmt.Sprintf("[ %08x%s ] ", dbg.vm.PC(), status)}
}

// printLocation prints the instruction at PC.
func (dbg *Debugger) printLocation() {
	pc := dbg.vm.PC()
	idx := int(pc >> 2)
	if pc%4 != 0 || dbg.vm.Prog == nil || idx >= len(dbg.vm.Prog.Instructions) {
		dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("%08x    ???", pc))
		return
	}
	dbg.term.TermPrintLine(terminal.StyleFeedback,
		fmt.Sprintf("%08x    %s", pc, dbg.dsm.FormatInstruction(idx)))
}

// step the machine once, reporting any error through the terminal.
func (dbg *Debugger) step() error {
	if err := dbg.vm.Step(); err != nil {
		return err
	}

	if dbg.vm.CPU.Halted {
		dbg.term.TermPrintLine(terminal.StyleFeedback, "machine halted")
		return nil
	}

	dbg.printLocation()
	return nil
}

// run the machine until halt, error, breakpoint or user interrupt.
func (dbg *Debugger) run() error {
	brake := 0

	err := dbg.vm.Run(func() (bool, error) {
		if dbg.breakpoints[dbg.vm.PC()] {
			dbg.term.TermPrintLine(terminal.StyleFeedback,
				fmt.Sprintf("breakpoint at %08x", dbg.vm.PC()))
			return false, nil
		}

		// checking for a signal on every step is expensive
		brake++
		if brake >= hardware.ContinueBrake {
			brake = 0
			select {
			case <-dbg.events.Signal:
				dbg.term.TermPrintLine(terminal.StyleFeedback, "interrupted")
				return false, nil
			default:
			}
		}

		return true, nil
	})
	if err != nil {
		return err
	}

	if dbg.vm.CPU.Halted {
		dbg.term.TermPrintLine(terminal.StyleFeedback, "machine halted")
	} else {
		dbg.printLocation()
	}
	return nil
}
