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

package hardware

import (
	"time"

	"github.com/gopherrv/gopherrv/assembler"
	"github.com/gopherrv/gopherrv/hardware/clocks"
	"github.com/gopherrv/gopherrv/hardware/cpu"
	"github.com/gopherrv/gopherrv/hardware/display"
	"github.com/gopherrv/gopherrv/hardware/memory"
	"github.com/gopherrv/gopherrv/hardware/memory/memorymap"
	"github.com/gopherrv/gopherrv/hardware/timer"
)

// VM is the main container for the components of the machine.
type VM struct {
	CPU      *cpu.CPU
	Mem      *memory.Memory
	CycTimer *timer.Cycle
	RTTimer  *timer.RealTime
	Display  *display.Display

	// the pacing clock throttles the step loop when enabled. see the
	// clocks package
	Clock *clocks.Pacing

	// the assembled program currently loaded into the machine
	Prog *assembler.Program

	// number of consecutive steps spent waiting for an interrupt. the step
	// loop gives up when this reaches deadlockBudget
	idleTicks int
}

// NewVM creates a new VM and everything associated with the hardware. The
// wallclock argument is the function used by the real-time timer to sample
// the wall clock; a nil value selects time.Now.
func NewVM(wallclock func() time.Time) *VM {
	vm := &VM{
		Mem:      memory.NewMemory(),
		CycTimer: timer.NewCycle(),
		RTTimer:  timer.NewRealTime(wallclock),
		Display:  display.NewDisplay(),
		Clock:    clocks.NewPacing(),
	}

	vm.Mem.Attach(memorymap.DisplayBuffer, vm.Display)
	vm.Mem.Attach(memorymap.CycleTimer, vm.CycTimer)
	vm.Mem.Attach(memorymap.RealTimeTimer, vm.RTTimer)

	vm.CPU = cpu.NewCPU(vm.Mem)
	vm.CPU.PlumbPendingLines(vm.Mip)

	return vm
}

// Mip composes the interrupt pending CSR from the device pending lines.
// The register is derived state: it is sampled fresh on every call and
// there is nothing to clear.
func (vm *VM) Mip() uint32 {
	var mip uint32
	if vm.CycTimer.PendingInterrupt() {
		mip |= cpu.MIPCycleTimer
	}
	if vm.RTTimer.PendingInterrupt() {
		mip |= cpu.MIPRealTime
	}
	return mip
}

// Load assembles source code and loads the result into the machine. The
// machine is reset, the data image is copied to the data region, and the
// stack pointer is set to the top of the stack. Instructions are fetched
// from the assembled program by address, starting at address zero; the
// text region of memory is not written.
func (vm *VM) Load(source string) error {
	prog, err := assembler.Assemble(source)
	if err != nil {
		return err
	}

	vm.Prog = prog
	vm.Reset()

	return nil
}

// Reset the machine to its power-on state, keeping the loaded program. The
// data image is restored to the data region and the stack pointer reloaded
// with the top of the stack region.
func (vm *VM) Reset() {
	vm.CPU.Reset()
	vm.Mem.Reset()
	vm.CycTimer.Reset()
	vm.RTTimer.Reset()
	vm.Display.Reset()
	vm.idleTicks = 0

	if vm.Prog != nil {
		_ = vm.Mem.LoadProgram(vm.Prog.Data, vm.Prog.DataOrigin)
	}

	// sp is the only register with a non-zero reset value
	vm.CPU.Regs.Write(2, memorymap.StackOrigin)
}
