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

package cpu_test

import (
	"testing"

	"github.com/gopherrv/gopherrv/hardware/cpu"
	"github.com/gopherrv/gopherrv/hardware/cpu/instructions"
	"github.com/gopherrv/gopherrv/hardware/display"
	"github.com/gopherrv/gopherrv/hardware/memory"
	"github.com/gopherrv/gopherrv/hardware/memory/memorymap"
	"github.com/gopherrv/gopherrv/hardware/timer"
	"github.com/gopherrv/gopherrv/test"
)

func newCPU() *cpu.CPU {
	mem := memory.NewMemory()
	mem.Attach(memorymap.DisplayBuffer, display.NewDisplay())
	mem.Attach(memorymap.CycleTimer, timer.NewCycle())
	mem.Attach(memorymap.RealTimeTimer, timer.NewRealTime(nil))
	return cpu.NewCPU(mem)
}

// step executes a single instruction, failing the test on error.
func step(t *testing.T, mc *cpu.CPU, ins instructions.Instruction) {
	t.Helper()
	if err := mc.ExecuteInstruction(ins); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
}

func TestAddSub(t *testing.T) {
	mc := newCPU()

	mc.Regs.Write(1, 10)
	mc.Regs.Write(2, 3)

	step(t, mc, instructions.Instruction{Op: instructions.Add, Rd: 3, Rs1: 1, Rs2: 2})
	test.Equate(t, mc.Regs.Read(3), 13)
	test.Equate(t, mc.PC, 4)

	step(t, mc, instructions.Instruction{Op: instructions.Sub, Rd: 3, Rs1: 2, Rs2: 1})
	test.Equate(t, mc.Regs.Read(3), uint32(0xfffffff9))

	// overflow wraps silently
	mc.Regs.Write(1, 0xffffffff)
	mc.Regs.Write(2, 2)
	step(t, mc, instructions.Instruction{Op: instructions.Add, Rd: 3, Rs1: 1, Rs2: 2})
	test.Equate(t, mc.Regs.Read(3), 1)
}

func TestZeroRegisterDiscard(t *testing.T) {
	mc := newCPU()

	mc.Regs.Write(1, 99)
	step(t, mc, instructions.Instruction{Op: instructions.Addi, Rd: 0, Rs1: 1, Imm: 1})
	test.Equate(t, mc.Regs.Read(0), 0)
}

func TestComparisons(t *testing.T) {
	mc := newCPU()

	// -1 < 1 signed, but not unsigned
	mc.Regs.Write(1, 0xffffffff)
	mc.Regs.Write(2, 1)

	step(t, mc, instructions.Instruction{Op: instructions.Slt, Rd: 3, Rs1: 1, Rs2: 2})
	test.Equate(t, mc.Regs.Read(3), 1)

	step(t, mc, instructions.Instruction{Op: instructions.Sltu, Rd: 3, Rs1: 1, Rs2: 2})
	test.Equate(t, mc.Regs.Read(3), 0)

	step(t, mc, instructions.Instruction{Op: instructions.Slti, Rd: 3, Rs1: 1, Imm: 0})
	test.Equate(t, mc.Regs.Read(3), 1)

	step(t, mc, instructions.Instruction{Op: instructions.Sltiu, Rd: 3, Rs1: 2, Imm: 2})
	test.Equate(t, mc.Regs.Read(3), 1)
}

func TestShifts(t *testing.T) {
	mc := newCPU()

	mc.Regs.Write(1, 0x80000001)

	step(t, mc, instructions.Instruction{Op: instructions.Slli, Rd: 2, Rs1: 1, Imm: 1})
	test.Equate(t, mc.Regs.Read(2), 2)

	step(t, mc, instructions.Instruction{Op: instructions.Srli, Rd: 2, Rs1: 1, Imm: 31})
	test.Equate(t, mc.Regs.Read(2), 1)

	// arithmetic shift preserves the sign
	step(t, mc, instructions.Instruction{Op: instructions.Srai, Rd: 2, Rs1: 1, Imm: 31})
	test.Equate(t, mc.Regs.Read(2), uint32(0xffffffff))

	// shift amounts use the low five bits of the register
	mc.Regs.Write(3, 33)
	step(t, mc, instructions.Instruction{Op: instructions.Sll, Rd: 2, Rs1: 1, Rs2: 3})
	test.Equate(t, mc.Regs.Read(2), uint32(0x00000002))
}

func TestMul(t *testing.T) {
	mc := newCPU()

	mc.Regs.Write(1, 100000)
	mc.Regs.Write(2, 100000)

	// only the low 32 bits of the product are returned
	step(t, mc, instructions.Instruction{Op: instructions.Mul, Rd: 3, Rs1: 1, Rs2: 2})
	test.Equate(t, mc.Regs.Read(3), uint32(100000*100000&0xffffffff))
}

func TestDivision(t *testing.T) {
	mc := newCPU()

	divisions := []struct {
		op       instructions.Operation
		a, b     uint32
		expected uint32
	}{
		{instructions.Div, 7, 2, 3},
		{instructions.Div, 0xfffffff9, 2, 0xfffffffd}, // -7 / 2 = -3
		{instructions.Div, 7, 0xfffffffe, 0xfffffffd}, // 7 / -2 = -3
		{instructions.Divu, 7, 2, 3},
		{instructions.Rem, 7, 2, 1},
		{instructions.Rem, 0xfffffff9, 2, 0xffffffff}, // -7 % 2 = -1
		{instructions.Remu, 7, 2, 1},

		// division by zero does not trap
		{instructions.Div, 7, 0, 0xffffffff},
		{instructions.Divu, 7, 0, 0xffffffff},
		{instructions.Rem, 7, 0, 7},
		{instructions.Remu, 7, 0, 7},

		// signed overflow
		{instructions.Div, 0x80000000, 0xffffffff, 0x80000000},
		{instructions.Rem, 0x80000000, 0xffffffff, 0},
	}

	for _, d := range divisions {
		mc.Regs.Write(1, d.a)
		mc.Regs.Write(2, d.b)
		step(t, mc, instructions.Instruction{Op: d.op, Rd: 3, Rs1: 1, Rs2: 2})
		test.Equate(t, mc.Regs.Read(3), d.expected)
	}
}

func TestDivRemIdentity(t *testing.T) {
	mc := newCPU()

	// dividend == quotient*divisor + remainder for a selection of values
	values := []uint32{0, 1, 7, 100, 0xfffffff9, 0x80000000, 0x7fffffff}
	divisors := []uint32{1, 2, 3, 0xffffffff, 0xfffffffd}

	for _, a := range values {
		for _, b := range divisors {
			mc.Regs.Write(1, a)
			mc.Regs.Write(2, b)
			step(t, mc, instructions.Instruction{Op: instructions.Div, Rd: 3, Rs1: 1, Rs2: 2})
			step(t, mc, instructions.Instruction{Op: instructions.Rem, Rd: 4, Rs1: 1, Rs2: 2})
			q := mc.Regs.Read(3)
			r := mc.Regs.Read(4)
			test.Equate(t, q*b+r, a)
		}
	}
}

func TestLoadStore(t *testing.T) {
	mc := newCPU()

	mc.Regs.Write(1, 0x10000)
	mc.Regs.Write(2, 0xcafe1234)

	step(t, mc, instructions.Instruction{Op: instructions.Sw, Rs1: 1, Rs2: 2, Imm: 8})
	step(t, mc, instructions.Instruction{Op: instructions.Lw, Rd: 3, Rs1: 1, Imm: 8})
	test.Equate(t, mc.Regs.Read(3), uint32(0xcafe1234))

	// negative offsets
	mc.Regs.Write(1, 0x10010)
	step(t, mc, instructions.Instruction{Op: instructions.Lw, Rd: 3, Rs1: 1, Imm: -8})
	test.Equate(t, mc.Regs.Read(3), uint32(0xcafe1234))

	// sign and zero extension on the narrow loads
	mc.Regs.Write(1, 0x10000)
	step(t, mc, instructions.Instruction{Op: instructions.Lb, Rd: 3, Rs1: 1, Imm: 9})
	test.Equate(t, mc.Regs.Read(3), uint32(0x00000012))
	step(t, mc, instructions.Instruction{Op: instructions.Lb, Rd: 3, Rs1: 1, Imm: 11})
	test.Equate(t, mc.Regs.Read(3), uint32(0xffffffca))
	step(t, mc, instructions.Instruction{Op: instructions.Lbu, Rd: 3, Rs1: 1, Imm: 11})
	test.Equate(t, mc.Regs.Read(3), uint32(0x000000ca))
	step(t, mc, instructions.Instruction{Op: instructions.Lh, Rd: 3, Rs1: 1, Imm: 10})
	test.Equate(t, mc.Regs.Read(3), uint32(0xffffcafe))
	step(t, mc, instructions.Instruction{Op: instructions.Lhu, Rd: 3, Rs1: 1, Imm: 10})
	test.Equate(t, mc.Regs.Read(3), uint32(0x0000cafe))

	// SB stores the low eight bits
	mc.Regs.Write(2, 0x11223344)
	step(t, mc, instructions.Instruction{Op: instructions.Sb, Rs1: 1, Rs2: 2, Imm: 16})
	step(t, mc, instructions.Instruction{Op: instructions.Lbu, Rd: 3, Rs1: 1, Imm: 16})
	test.Equate(t, mc.Regs.Read(3), uint32(0x44))
}

func TestLoadFault(t *testing.T) {
	mc := newCPU()

	mc.Regs.Write(1, 0x100000)
	err := mc.ExecuteInstruction(instructions.Instruction{Op: instructions.Lw, Rd: 3, Rs1: 1})
	test.ExpectedFailure(t, err)

	// PC has not advanced past the faulting instruction
	test.Equate(t, mc.PC, 0)
}

func TestBranches(t *testing.T) {
	mc := newCPU()

	mc.Regs.Write(1, 5)
	mc.Regs.Write(2, 5)

	// taken branch moves PC by the offset
	step(t, mc, instructions.Instruction{Op: instructions.Beq, Rs1: 1, Rs2: 2, Imm: 16})
	test.Equate(t, mc.PC, 16)

	// branch not taken advances PC by four
	step(t, mc, instructions.Instruction{Op: instructions.Bne, Rs1: 1, Rs2: 2, Imm: 16})
	test.Equate(t, mc.PC, 20)

	// backwards branch
	mc.Regs.Write(2, 6)
	step(t, mc, instructions.Instruction{Op: instructions.Bltu, Rs1: 1, Rs2: 2, Imm: -8})
	test.Equate(t, mc.PC, 12)

	// signed comparison: -1 >= 1 is false
	mc.Regs.Write(1, 0xffffffff)
	mc.Regs.Write(2, 1)
	step(t, mc, instructions.Instruction{Op: instructions.Bge, Rs1: 1, Rs2: 2, Imm: 100})
	test.Equate(t, mc.PC, 16)
}

func TestJumps(t *testing.T) {
	mc := newCPU()
	mc.PC = 100

	step(t, mc, instructions.Instruction{Op: instructions.Jal, Rd: 1, Imm: 32})
	test.Equate(t, mc.Regs.Read(1), 104)
	test.Equate(t, mc.PC, 132)

	// JALR clears the bottom bit of the target
	mc.Regs.Write(2, 41)
	step(t, mc, instructions.Instruction{Op: instructions.Jalr, Rd: 3, Rs1: 2, Imm: 0})
	test.Equate(t, mc.Regs.Read(3), 136)
	test.Equate(t, mc.PC, 40)
}

func TestLui(t *testing.T) {
	mc := newCPU()

	// LUI x1, 0x10 followed by ADDI x1, x1, 14 builds the address 0x1000e
	step(t, mc, instructions.Instruction{Op: instructions.Lui, Rd: 1, Imm: 0x10})
	test.Equate(t, mc.Regs.Read(1), uint32(0x10000))

	step(t, mc, instructions.Instruction{Op: instructions.Addi, Rd: 1, Rs1: 1, Imm: 14})
	test.Equate(t, mc.Regs.Read(1), uint32(0x1000e))
}

func TestAuipc(t *testing.T) {
	mc := newCPU()
	mc.PC = 0x1000

	step(t, mc, instructions.Instruction{Op: instructions.Auipc, Rd: 1, Imm: 0x10})
	test.Equate(t, mc.Regs.Read(1), uint32(0x11000))
}

func TestCSRAtomics(t *testing.T) {
	mc := newCPU()

	// CSRRW swaps
	mc.Regs.Write(1, 0x08)
	step(t, mc, instructions.Instruction{Op: instructions.Csrrw, Rd: 2, Rs1: 1, Imm: cpu.AddrMStatus})
	test.Equate(t, mc.Regs.Read(2), 0)
	test.Equate(t, mc.CSR.MStatus, uint32(0x08))

	// CSRRS sets bits and returns the old value
	mc.Regs.Write(1, 0x80)
	step(t, mc, instructions.Instruction{Op: instructions.Csrrs, Rd: 2, Rs1: 1, Imm: cpu.AddrMIE})
	test.Equate(t, mc.Regs.Read(2), 0)
	test.Equate(t, mc.CSR.MIE, uint32(0x80))

	// CSRRC clears bits
	step(t, mc, instructions.Instruction{Op: instructions.Csrrc, Rd: 2, Rs1: 1, Imm: cpu.AddrMIE})
	test.Equate(t, mc.Regs.Read(2), uint32(0x80))
	test.Equate(t, mc.CSR.MIE, uint32(0))

	// immediate variants use the Rs1 field as a five bit immediate
	step(t, mc, instructions.Instruction{Op: instructions.Csrrwi, Rd: 0, Rs1: 9, Imm: cpu.AddrMTVec})
	test.Equate(t, mc.CSR.MTVec, uint32(9))

	step(t, mc, instructions.Instruction{Op: instructions.Csrrsi, Rd: 0, Rs1: 2, Imm: cpu.AddrMTVec})
	test.Equate(t, mc.CSR.MTVec, uint32(11))

	step(t, mc, instructions.Instruction{Op: instructions.Csrrci, Rd: 0, Rs1: 1, Imm: cpu.AddrMTVec})
	test.Equate(t, mc.CSR.MTVec, uint32(10))

	// an unimplemented CSR reads as zero; the write is silently discarded
	step(t, mc, instructions.Instruction{Op: instructions.Csrrwi, Rd: 2, Rs1: 5, Imm: 0x340})
	test.Equate(t, mc.Regs.Read(2), 0)
}

func TestTrapEntryAndReturn(t *testing.T) {
	mc := newCPU()

	mc.CSR.MTVec = 0x200
	mc.CSR.MIE = cpu.MIPCycleTimer
	mc.CSR.MStatus = cpu.MStatusMIE
	mc.PC = 0x64

	// no pending lines, no trap
	_, pending := mc.PendingTrap(0)
	test.ExpectedFailure(t, pending)

	// pending and enabled
	cause, pending := mc.PendingTrap(cpu.MIPCycleTimer)
	test.ExpectedSuccess(t, pending)
	test.Equate(t, cause, uint32(0x80000007))

	mc.EnterTrap(cause)
	test.Equate(t, mc.PC, uint32(0x200))
	test.Equate(t, mc.CSR.MEPC, uint32(0x64))
	test.Equate(t, mc.CSR.MCause, uint32(0x80000007))
	test.Equate(t, mc.CSR.MStatus&cpu.MStatusMIE, 0)

	// interrupts do not nest: with MIE clear nothing is pending
	_, pending = mc.PendingTrap(cpu.MIPCycleTimer)
	test.ExpectedFailure(t, pending)

	// MRET restores PC and the interrupt enable
	step(t, mc, instructions.Instruction{Op: instructions.Mret})
	test.Equate(t, mc.PC, uint32(0x64))
	test.Equate(t, mc.CSR.MStatus&cpu.MStatusMIE, int(cpu.MStatusMIE))
}

func TestTrapPriority(t *testing.T) {
	mc := newCPU()

	mc.CSR.MIE = cpu.MIPCycleTimer | cpu.MIPRealTime
	mc.CSR.MStatus = cpu.MStatusMIE

	// with both lines pending the cycle timer wins
	cause, pending := mc.PendingTrap(cpu.MIPCycleTimer | cpu.MIPRealTime)
	test.ExpectedSuccess(t, pending)
	test.Equate(t, cause, uint32(0x80000007))

	// masking the cycle timer leaves the real-time timer
	mc.CSR.MIE = cpu.MIPRealTime
	cause, pending = mc.PendingTrap(cpu.MIPCycleTimer | cpu.MIPRealTime)
	test.ExpectedSuccess(t, pending)
	test.Equate(t, cause, uint32(0x8000000b))
}

func TestHaltAndWfi(t *testing.T) {
	mc := newCPU()

	step(t, mc, instructions.Instruction{Op: instructions.Wfi})
	test.ExpectedSuccess(t, mc.WFI)
	test.Equate(t, mc.PC, 4)

	// trap entry abandons the wait state
	mc.EnterTrap(cpu.CauseCycleTimer)
	test.ExpectedFailure(t, mc.WFI)

	step(t, mc, instructions.Instruction{Op: instructions.Halt})
	test.ExpectedSuccess(t, mc.Halted)
}
