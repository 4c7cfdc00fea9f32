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

package cpu

import (
	"fmt"

	"github.com/gopherrv/gopherrv/hardware/cpu/registers"
)

// Memory is the interface to the memory sub-system required by the CPU.
type Memory interface {
	ReadByte(address uint32) (uint8, error)
	ReadHalfword(address uint32) (uint16, error)
	ReadWord(address uint32) (uint32, error)
	WriteByte(address uint32, data uint8) error
	WriteHalfword(address uint32, data uint16) error
	WriteWord(address uint32, data uint32) error
}

// CPU implements the processor state of the machine: thirty-two general
// purpose registers, the program counter and the machine-mode CSR file.
type CPU struct {
	Regs registers.File
	PC   uint32
	CSR  CSR

	// the CPU stops permanently when Halted is set. see the Halt
	// instruction
	Halted bool

	// instruction fetch is suspended while WFI is set. see the Wfi
	// instruction and the step loop in the hardware package
	WFI bool

	// number of instructions executed since the last Reset()
	InstructionCount int

	mem Memory

	// mip is the function used to sample the interrupt pending lines when
	// a program reads the mip CSR. set by the hardware package
	mip func() uint32
}

// NewCPU is the preferred method of initialisation for the CPU type.
func NewCPU(mem Memory) *CPU {
	mc := &CPU{mem: mem}
	mc.mip = func() uint32 { return 0 }
	mc.Reset()
	return mc
}

// PlumbPendingLines connects the function used to sample the interrupt
// pending lines for reads of the mip CSR.
func (mc *CPU) PlumbPendingLines(mip func() uint32) {
	mc.mip = mip
}

func (mc *CPU) String() string {
	return fmt.Sprintf("pc=%08x %s\n%s", mc.PC, mc.CSR.String(), mc.Regs.String())
}

// Reset reinitialises the processor: registers and CSRs to zero, PC to
// zero, flags cleared. The caller is responsible for reloading the stack
// pointer afterwards.
func (mc *CPU) Reset() {
	mc.Regs.Reset()
	mc.PC = 0
	mc.CSR.Reset()
	mc.Halted = false
	mc.WFI = false
	mc.InstructionCount = 0
}

// PendingTrap returns the cause value of the highest priority interrupt
// that is pending, enabled in mie, and permitted by the global interrupt
// enable. The mip argument is the current state of the pending lines.
func (mc *CPU) PendingTrap(mip uint32) (uint32, bool) {
	if mc.CSR.MStatus&MStatusMIE == 0 {
		return 0, false
	}

	active := mip & mc.CSR.MIE
	if active == 0 {
		return 0, false
	}

	// lower bit number wins
	if active&MIPCycleTimer == MIPCycleTimer {
		return CauseCycleTimer, true
	}
	return CauseRealTime, true
}

// EnterTrap diverts execution to the trap vector: the current PC is saved
// in mepc, the cause recorded in mcause, the global interrupt enable
// cleared and any wait-for-interrupt state abandoned.
//
// The device pending bit is deliberately not cleared. The trap handler
// must write a 1 to the pending bit of the device's control register.
func (mc *CPU) EnterTrap(cause uint32) {
	mc.CSR.MEPC = mc.PC
	mc.CSR.MCause = cause
	mc.CSR.MStatus &^= MStatusMIE
	mc.WFI = false
	mc.PC = mc.CSR.MTVec
}

// Mret returns from a trap handler: PC is restored from mepc and the
// global interrupt enable is set. No other CSR is touched.
func (mc *CPU) Mret() {
	mc.PC = mc.CSR.MEPC
	mc.CSR.MStatus |= MStatusMIE
}
