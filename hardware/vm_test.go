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

package hardware_test

import (
	"testing"
	"time"

	"github.com/gopherrv/gopherrv/curated"
	"github.com/gopherrv/gopherrv/hardware"
	"github.com/gopherrv/gopherrv/hardware/memory"
	"github.com/gopherrv/gopherrv/test"
)

// load is a test helper that assembles and loads a program, failing the
// test on error.
func load(t *testing.T, vm *hardware.VM, source string) {
	t.Helper()
	if err := vm.Load(source); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
}

// runSteps drives the machine for at most the specified number of steps.
func runSteps(t *testing.T, vm *hardware.VM, steps int) {
	t.Helper()
	if _, err := vm.RunForSteps(steps); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
}

func TestFactorial(t *testing.T) {
	vm := hardware.NewVM(nil)

	// factorial(5) by repeated addition. the accumulator is a0 (x10)
	load(t, vm, `
		addi a0, zero, 1     # accumulator
		addi t0, zero, 2     # i
		addi t1, zero, 5     # n
	outer:
		blt  t1, t0, done
		addi t2, zero, 0     # sum
		addi t3, zero, 0     # j
	inner:
		beq  t3, t0, stepi
		add  t2, t2, a0
		addi t3, t3, 1
		j    inner
	stepi:
		mv   a0, t2
		addi t0, t0, 1
		j    outer
	done:
		halt
	`)

	runSteps(t, vm, 10000)
	test.ExpectedSuccess(t, vm.CPU.Halted)
	test.Equate(t, vm.CPU.Regs.Read(10), 120)
}

func TestFibonacci(t *testing.T) {
	vm := hardware.NewVM(nil)

	load(t, vm, `
		la   t0, fib
		addi t1, zero, 0
		addi t2, zero, 1
		addi t3, zero, 10
		addi t4, zero, 0
	loop:
		beq  t4, t3, done
		sw   t1, 0(t0)
		add  t5, t1, t2
		mv   t1, t2
		mv   t2, t5
		addi t0, t0, 4
		addi t4, t4, 1
		j    loop
	done:
		halt

	.data
	fib:
		.word 0, 0, 0, 0, 0, 0, 0, 0, 0, 0
	`)

	runSteps(t, vm, 10000)
	test.ExpectedSuccess(t, vm.CPU.Halted)

	expected := []uint32{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}
	base := vm.Prog.Labels["fib"]
	for i, e := range expected {
		w, err := vm.Mem.ReadWord(base + uint32(i*4))
		test.ExpectedSuccess(t, err)
		test.Equate(t, w, e)
	}
}

func TestAddressConstruction(t *testing.T) {
	vm := hardware.NewVM(nil)

	load(t, vm, `
		lui  x1, 0x10
		addi x1, x1, 14
		halt
	`)

	runSteps(t, vm, 10)
	test.Equate(t, vm.CPU.Regs.Read(1), uint32(0x1000e))
}

func TestCycleTimerInterrupt(t *testing.T) {
	vm := hardware.NewVM(nil)

	// compare=100, periodic with auto-reload. the handler counts firings
	// in s1 and clears the pending bit at the device
	load(t, vm, `
		la    t0, 0xf7e00
		addi  t1, zero, 100
		sw    t1, 4(t0)          # compare
		addi  t1, zero, 0x0b
		sw    t1, 8(t0)          # enable, periodic, auto-reload
		la    t2, handler
		csrrw zero, 0x305, t2    # mtvec
		addi  t3, zero, 0x80
		csrrw zero, 0x304, t3    # mie: cycle timer
		csrrsi zero, 0x300, 8    # mstatus: global enable
	loop:
		j     loop

	handler:
		addi  s1, s1, 1
		addi  t5, zero, 0x0f     # write-1-to-clear the pending bit
		sw    t5, 8(t0)
		mret
	`)

	runSteps(t, vm, 550)
	test.Equate(t, vm.CPU.Regs.Read(9), 5)

	// mcause records the cycle timer interrupt
	test.Equate(t, vm.CPU.CSR.MCause, uint32(0x80000007))
}

func TestWFIWake(t *testing.T) {
	vm := hardware.NewVM(nil)

	load(t, vm, `
		la    t0, 0xf7e00
		addi  t1, zero, 50
		sw    t1, 4(t0)          # compare
		la    t2, handler
		csrrw zero, 0x305, t2
		addi  t3, zero, 0x80
		csrrw zero, 0x304, t3
		csrrsi zero, 0x300, 8
		addi  t1, zero, 1
		sw    t1, 8(t0)          # enable, one-shot. armed last
		wfi
		addi  a0, zero, 42       # the instruction after wfi
		halt

	handler:
		addi  a1, zero, 1
		addi  t5, zero, 0x04     # clear pending, leave the timer off
		sw    t5, 8(t0)
		mret
	`)

	// the machine reaches wfi quickly; it must not reach the addi until
	// the timer has fired
	runSteps(t, vm, 3)
	test.ExpectedFailure(t, vm.CPU.Halted)

	runSteps(t, vm, 100)
	test.ExpectedSuccess(t, vm.CPU.Halted)
	test.Equate(t, vm.CPU.Regs.Read(10), 42)
	test.Equate(t, vm.CPU.Regs.Read(11), 1)
}

func TestRealTimeTimerInterrupt(t *testing.T) {
	// the fake wall clock advances one millisecond on every sample
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	vm := hardware.NewVM(func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	})

	load(t, vm, `
		la    t0, 0xf7e20
		addi  t1, zero, 1000
		sw    t1, 4(t0)          # frequency: 1000Hz
		addi  t1, zero, 1
		sw    t1, 8(t0)          # enable, periodic
		la    t2, handler
		csrrw zero, 0x305, t2
		lui   t3, 1
		addi  t3, t3, -2048      # 0x800: real-time timer enable
		csrrw zero, 0x304, t3
		csrrsi zero, 0x300, 8
	loop:
		j     loop

	handler:
		addi  s1, s1, 1
		addi  t5, zero, 0x05
		sw    t5, 8(t0)
		mret
	`)

	runSteps(t, vm, 200)

	// the timer fires throughout the run
	if vm.CPU.Regs.Read(9) == 0 {
		t.Fatalf("real-time timer never fired")
	}
	test.Equate(t, vm.CPU.CSR.MCause, uint32(0x8000000b))
}

func TestTextProtectionFault(t *testing.T) {
	vm := hardware.NewVM(nil)
	vm.Mem.ProtectText = true

	load(t, vm, `sw x1, 0(x0)`)

	_, err := vm.RunForSteps(10)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, memory.ProtectionError))

	// the reported fault address is zero and PC is the address of the
	// store
	test.ExpectedSuccess(t, vm.Mem.LastFault.Valid)
	test.Equate(t, vm.Mem.LastFault.Address, uint32(0))
	test.Equate(t, vm.PC(), uint32(0))
}

func TestDoubleHalt(t *testing.T) {
	vm := hardware.NewVM(nil)

	load(t, vm, `halt`)

	runSteps(t, vm, 1)
	test.ExpectedSuccess(t, vm.CPU.Halted)
	count := vm.CPU.InstructionCount

	// stepping a halted machine does no work
	for i := 0; i < 10; i++ {
		test.ExpectedSuccess(t, vm.Step())
	}
	test.ExpectedSuccess(t, vm.CPU.Halted)
	test.Equate(t, vm.CPU.InstructionCount, count)
}

func TestBusyWait(t *testing.T) {
	vm := hardware.NewVM(nil)

	// a branch to its own address is legal and makes no progress
	load(t, vm, `loop: beq x0, x0, loop`)

	runSteps(t, vm, 100)
	test.Equate(t, vm.PC(), uint32(0))
	test.ExpectedFailure(t, vm.CPU.Halted)
}

func TestWFIDeadlock(t *testing.T) {
	vm := hardware.NewVM(nil)

	// wfi with interrupts disabled and no enabled interrupt source can
	// never wake. the step loop reports a deadlock after a bounded number
	// of idle ticks
	load(t, vm, `wfi`)

	_, err := vm.RunForSteps(1100000)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, hardware.DeadlockError))
}

func TestPendingIgnoredWhileDisabled(t *testing.T) {
	vm := hardware.NewVM(nil)

	// the timer fires but neither mie nor mstatus.MIE is set. the pending
	// bit must stay up and no trap may be taken
	load(t, vm, `
		la    t0, 0xf7e00
		addi  t1, zero, 10
		sw    t1, 4(t0)
		addi  t1, zero, 0x0b
		sw    t1, 8(t0)
	loop:
		j     loop
	`)

	runSteps(t, vm, 100)

	test.Equate(t, vm.Mip()&0x80, int(0x80))
	test.Equate(t, vm.CPU.CSR.MCause, uint32(0))

	// enabling mie alone is still not enough
	vm.CPU.CSR.MIE = 0x80
	runSteps(t, vm, 10)
	test.Equate(t, vm.CPU.CSR.MCause, uint32(0))
	test.Equate(t, vm.CPU.CSR.MStatus, uint32(0))
}

func TestReset(t *testing.T) {
	vm := hardware.NewVM(nil)

	load(t, vm, `
		addi t0, zero, 99
		halt
	`)

	runSteps(t, vm, 10)
	test.ExpectedSuccess(t, vm.CPU.Halted)

	vm.Reset()
	test.ExpectedFailure(t, vm.CPU.Halted)
	test.Equate(t, vm.PC(), uint32(0))
	test.Equate(t, vm.CPU.Regs.Read(5), 0)

	// sp returns to the top of the stack
	test.Equate(t, vm.CPU.Regs.Read(2), uint32(0xbfffc))

	// the program is still loaded and runs again
	runSteps(t, vm, 10)
	test.ExpectedSuccess(t, vm.CPU.Halted)
	test.Equate(t, vm.CPU.Regs.Read(5), 99)
}
