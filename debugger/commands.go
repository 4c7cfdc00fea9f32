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
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"

	"github.com/gopherrv/gopherrv/debugger/terminal"
	"github.com/gopherrv/gopherrv/hardware/memory/memorymap"
	"github.com/gopherrv/gopherrv/logger"
)

// the command set, in the order shown by HELP.
var commands = []struct {
	name string
	help string
}{
	{"STEP", "execute the next instruction (also a blank line)"},
	{"RUN", "run until halt, breakpoint or ctrl-c"},
	{"REGS", "show the register file"},
	{"CSR", "show the machine-mode CSRs"},
	{"MEM", "MEM <address|label> [lines] - hexdump memory"},
	{"DISPLAY", "render the display"},
	{"LIST", "disassemble the loaded program"},
	{"BREAK", "BREAK <address|label> - set a breakpoint"},
	{"CLEAR", "CLEAR <address|label> - clear a breakpoint"},
	{"BREAKS", "list breakpoints"},
	{"TIMERS", "show the timer devices"},
	{"MAP", "show the memory map"},
	{"LOG", "show the application log"},
	{"VIZ", "VIZ [file] - write a graphviz rendering of the machine"},
	{"RESET", "reset the machine"},
	{"HELP", "this help"},
	{"QUIT", "end the session"},
}

// parseInput splits the input and dispatches the command.
func (dbg *Debugger) parseInput(input string) error {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return dbg.step()
	}

	command := strings.ToUpper(fields[0])
	args := fields[1:]

	switch command {
	case "STEP", "S":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("STEP requires a positive count")
			}
		}
		for i := 0; i < n; i++ {
			if err := dbg.step(); err != nil {
				return err
			}
		}

	case "RUN", "R":
		return dbg.run()

	case "REGS":
		dbg.term.TermPrintLine(terminal.StyleOutput, strings.TrimRight(dbg.vm.CPU.Regs.String(), "\n"))
		dbg.term.TermPrintLine(terminal.StyleOutput, fmt.Sprintf("pc: %08x", dbg.vm.PC()))

	case "CSR":
		dbg.term.TermPrintLine(terminal.StyleOutput, dbg.vm.CPU.CSR.String())
		dbg.term.TermPrintLine(terminal.StyleOutput, fmt.Sprintf("mip=%08x (derived)", dbg.vm.Mip()))

	case "MEM":
		if len(args) == 0 {
			return fmt.Errorf("MEM requires an address")
		}
		address, err := dbg.parseAddress(args[0])
		if err != nil {
			return err
		}
		lines := 4
		if len(args) > 1 {
			if lines, err = strconv.Atoi(args[1]); err != nil || lines < 1 {
				return fmt.Errorf("MEM line count must be a positive number")
			}
		}
		dbg.hexdump(address, lines)

	case "DISPLAY":
		dbg.term.TermPrintLine(terminal.StyleOutput, strings.TrimRight(dbg.vm.Display.String(), "\n"))

	case "LIST":
		w := &strings.Builder{}
		if err := dbg.dsm.Write(w); err != nil {
			return err
		}
		dbg.term.TermPrintLine(terminal.StyleOutput, strings.TrimRight(w.String(), "\n"))

	case "BREAK":
		if len(args) == 0 {
			return fmt.Errorf("BREAK requires an address or label")
		}
		address, err := dbg.parseAddress(args[0])
		if err != nil {
			return err
		}
		dbg.breakpoints[address] = true
		dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("breakpoint set at %08x", address))

	case "CLEAR":
		if len(args) == 0 {
			return fmt.Errorf("CLEAR requires an address or label")
		}
		address, err := dbg.parseAddress(args[0])
		if err != nil {
			return err
		}
		delete(dbg.breakpoints, address)

	case "BREAKS":
		if len(dbg.breakpoints) == 0 {
			dbg.term.TermPrintLine(terminal.StyleFeedback, "no breakpoints")
		}
		for address := range dbg.breakpoints {
			s := fmt.Sprintf("%08x", address)
			if name, ok := dbg.vm.Prog.LabelFor(address); ok {
				s = fmt.Sprintf("%s (%s)", s, name)
			}
			dbg.term.TermPrintLine(terminal.StyleOutput, s)
		}

	case "TIMERS":
		dbg.term.TermPrintLine(terminal.StyleOutput, fmt.Sprintf("cycle: %s", dbg.vm.CycTimer.String()))
		dbg.term.TermPrintLine(terminal.StyleOutput, fmt.Sprintf("real-time: %s", dbg.vm.RTTimer.String()))

	case "MAP":
		dbg.term.TermPrintLine(terminal.StyleOutput, strings.TrimRight(memorymap.Summary(), "\n"))

	case "LOG":
		w := &strings.Builder{}
		logger.Tail(w, 20)
		if w.Len() == 0 {
			dbg.term.TermPrintLine(terminal.StyleFeedback, "log is empty")
		} else {
			dbg.term.TermPrintLine(terminal.StyleOutput, strings.TrimRight(w.String(), "\n"))
		}

	case "VIZ":
		filename := "gopherrv.dot"
		if len(args) > 0 {
			filename = args[0]
		}
		b := &bytes.Buffer{}
		memviz.Map(b, dbg.vm)
		if err := os.WriteFile(filename, b.Bytes(), 0644); err != nil {
			return err
		}
		dbg.term.TermPrintLine(terminal.StyleFeedback, fmt.Sprintf("machine graph written to %s", filename))

	case "RESET":
		dbg.vm.Reset()
		dbg.printLocation()

	case "HELP":
		for _, c := range commands {
			dbg.term.TermPrintLine(terminal.StyleHelp, fmt.Sprintf("%-10s %s", c.name, c.help))
		}

	case "QUIT", "Q":
		dbg.running = false

	default:
		return fmt.Errorf("unknown command: %s", command)
	}

	return nil
}

// parseAddress converts a numeric or label argument to an address.
func (dbg *Debugger) parseAddress(s string) (uint32, error) {
	if dbg.vm.Prog != nil {
		if address, ok := dbg.vm.Prog.Labels[s]; ok {
			return address, nil
		}
	}

	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("not an address or label: %s", s)
	}
	return uint32(v), nil
}

// hexdump prints lines of sixteen bytes through the terminal.
func (dbg *Debugger) hexdump(address uint32, lines int) {
	for l := 0; l < lines; l++ {
		addr := address + uint32(l*16)
		if addr >= memorymap.Memtop {
			return
		}

		hex := strings.Builder{}
		ascii := strings.Builder{}
		for i := uint32(0); i < 16; i++ {
			b := dbg.vm.Mem.Peek(addr + i)
			hex.WriteString(fmt.Sprintf("%02x ", b))
			if b >= 0x20 && b <= 0x7e {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}

		dbg.term.TermPrintLine(terminal.StyleOutput,
			fmt.Sprintf("%08x  %s %s", addr, hex.String(), ascii.String()))
	}
}

// tabCompletion completes the first word of the input against the command
// set, cycling through the candidates on repeated presses.
type tabCompletion struct {
	last      string
	candidate int
}

func newTabCompletion() *tabCompletion {
	return &tabCompletion{}
}

// Complete implements the terminal.TabCompletion interface.
func (tc *tabCompletion) Complete(input string) string {
	if strings.Contains(strings.TrimSpace(input), " ") {
		return input
	}

	if tc.last == "" {
		tc.last = strings.ToUpper(strings.TrimSpace(input))
	}

	var matches []string
	for _, c := range commands {
		if strings.HasPrefix(c.name, tc.last) {
			matches = append(matches, c.name)
		}
	}
	if len(matches) == 0 {
		return input
	}

	s := matches[tc.candidate%len(matches)]
	tc.candidate++
	return s + " "
}

// Reset implements the terminal.TabCompletion interface.
func (tc *tabCompletion) Reset() {
	tc.last = ""
	tc.candidate = 0
}
