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

// GopherRV is an educational 32bit RISC virtual machine. It executes an
// assembly dialect covering the RV32I base set, the M extension,
// machine-mode CSRs and trap handling, with two memory mapped timers and
// an 80x25 text display.
//
// Programs are assembled from source on every run; there is no binary
// format. See the assembler package for the source dialect.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gopherrv/gopherrv/assembler"
	"github.com/gopherrv/gopherrv/debugger"
	"github.com/gopherrv/gopherrv/debugger/terminal"
	"github.com/gopherrv/gopherrv/debugger/terminal/colorterm"
	"github.com/gopherrv/gopherrv/debugger/terminal/plainterm"
	"github.com/gopherrv/gopherrv/disassembly"
	"github.com/gopherrv/gopherrv/hardware"
	"github.com/gopherrv/gopherrv/logger"
	"github.com/gopherrv/gopherrv/modalflag"
	"github.com/gopherrv/gopherrv/report"
	"github.com/gopherrv/gopherrv/statsview"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG", "DISASM")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* %s\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "DEBUG":
		err = debug(md)
	case "DISASM":
		err = disasm(md)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// loadSource reads the assembly file named in the remaining arguments.
func loadSource(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", fmt.Errorf("no source file specified")
	case 1:
		b, err := os.ReadFile(md.GetArg(0))
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("too many arguments for %s mode", md)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stderr")
	step := md.AddBool("step", false, "single-step the program (same as DEBUG mode)")
	protect := md.AddBool("protect", false, "write-protect the text segment")
	max := md.AddInt("max", 1000000, "maximum number of steps (0 for no limit)")
	noDisplay := md.AddBool("nodisplay", false, "do not render the display when the machine halts")
	live := md.AddBool("live", false, "render the display during execution")
	interval := md.AddInt("interval", 10000, "steps between display updates in live mode")
	hz := md.AddInt("hz", 1000, "pacing clock frequency")
	noClock := md.AddBool("noclock", false, "disable the pacing clock (maximum speed)")
	stats := md.AddBool("statsview", false, "run stats server (requires a statsview build)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr, true)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	source, err := loadSource(md)
	if err != nil {
		return err
	}

	vm := hardware.NewVM(nil)
	vm.Mem.ProtectText = *protect
	vm.Clock.SetFrequency(*hz)
	vm.Clock.Enable(!*noClock)

	if err := vm.Load(source); err != nil {
		return err
	}

	if *step {
		dbg := debugger.NewDebugger(vm)
		return dbg.Start(&plainterm.PlainTerminal{})
	}

	if *live {
		// clear the screen and hide the cursor for the live renderer
		fmt.Print("\033[2J\033[?25l")
		defer fmt.Print("\033[?25h")
	}

	steps := 0
	err = vm.Run(func() (bool, error) {
		steps++

		if *live && *interval > 0 && steps%(*interval) == 0 {
			fmt.Print("\033[H")
			fmt.Print(vm.Display.String())
			fmt.Printf("steps: %d\n", steps)
		}

		if *max > 0 && steps >= *max {
			fmt.Fprintf(os.Stderr, "step limit of %d reached\n", *max)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		report.Fault(os.Stderr, err, vm)
		return err
	}

	if !*noDisplay {
		fmt.Print(vm.Display.String())
	}
	fmt.Printf("%d instructions\n", vm.CPU.InstructionCount)

	return nil
}

func debug(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stderr")
	protect := md.AddBool("protect", false, "write-protect the text segment")
	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stderr, true)
	}

	source, err := loadSource(md)
	if err != nil {
		return err
	}

	vm := hardware.NewVM(nil)
	vm.Mem.ProtectText = *protect

	if err := vm.Load(source); err != nil {
		return err
	}

	var term terminal.Terminal
	switch strings.ToUpper(*termType) {
	case "COLOR":
		term = &colorterm.ColorTerminal{}
	case "PLAIN":
		term = &plainterm.PlainTerminal{}
	default:
		return fmt.Errorf("unknown terminal type: %s", *termType)
	}

	dbg := debugger.NewDebugger(vm)
	return dbg.Start(term)
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	var output io.Writer = os.Stdout

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	source, err := loadSource(md)
	if err != nil {
		return err
	}

	prog, err := assembler.Assemble(source)
	if err != nil {
		return err
	}

	return disassembly.FromProgram(prog).Write(output)
}
