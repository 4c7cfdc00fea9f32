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
	"github.com/gopherrv/gopherrv/curated"
	"github.com/gopherrv/gopherrv/hardware/cpu"
)

// Error patterns raised by the hardware package.
const (
	PCError       = "vm: program counter out of bounds: %08x"
	DeadlockError = "vm: deadlock: waiting for interrupt with interrupts disabled"
	NoProgram     = "vm: no program loaded"
)

// deadlockBudget is the number of consecutive idle steps the machine will
// tolerate in the wait-for-interrupt state while interrupts are globally
// disabled.
const deadlockBudget = 1000000

// Step the machine by one instruction. In order: the timers advance, the
// interrupt lines are sampled, a due trap is entered, and - if the machine
// is not waiting for an interrupt - the instruction at PC is executed.
//
// A step in which a trap is entered does not also execute an instruction;
// the handler's first instruction runs on the next step.
//
// Stepping a halted machine is a no-op.
func (vm *VM) Step() error {
	if vm.CPU.Halted {
		return nil
	}

	if vm.Prog == nil {
		return curated.Errorf(NoProgram)
	}

	defer vm.Clock.Tick()

	// timers first. a pending line raised here is visible to the trap
	// check immediately below
	vm.CycTimer.Tick()
	vm.RTTimer.Check()

	mip := vm.Mip()

	if cause, ok := vm.CPU.PendingTrap(mip); ok {
		vm.CPU.EnterTrap(cause)
		vm.idleTicks = 0
		return nil
	}

	if vm.CPU.WFI {
		// an enabled pending line ends the wait even when the global
		// interrupt enable is off
		if mip&vm.CPU.CSR.MIE != 0 {
			vm.CPU.WFI = false
			return nil
		}

		// idle steps only count towards the deadlock budget while the
		// global interrupt enable is off
		if vm.CPU.CSR.MStatus&cpu.MStatusMIE != 0 {
			vm.idleTicks = 0
			return nil
		}

		vm.idleTicks++
		if vm.idleTicks >= deadlockBudget {
			return curated.Errorf(DeadlockError)
		}
		return nil
	}
	vm.idleTicks = 0

	// fetch the decoded instruction at PC
	idx := int(vm.PC() >> 2)
	if vm.PC()%4 != 0 || idx >= len(vm.Prog.Instructions) {
		return curated.Errorf(PCError, vm.PC())
	}

	err := vm.CPU.ExecuteInstruction(vm.Prog.Instructions[idx])
	if err != nil {
		return err
	}

	vm.CPU.InstructionCount++
	return nil
}

// PC returns the current program counter.
func (vm *VM) PC() uint32 {
	return vm.CPU.PC
}
