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

package timer_test

import (
	"testing"

	"github.com/gopherrv/gopherrv/hardware/timer"
	"github.com/gopherrv/gopherrv/test"
)

// writeWord pokes a word into a device register four bytes at a time, the
// same way the memory package does.
func writeWord(dev interface {
	WriteRegister(offset uint32, data uint8)
}, offset uint32, data uint32) {
	for i := uint32(0); i < 4; i++ {
		dev.WriteRegister(offset+i, uint8(data>>(i*8)))
	}
}

func readWord(dev interface {
	ReadRegister(offset uint32) uint8
}, offset uint32) uint32 {
	var data uint32
	for i := uint32(0); i < 4; i++ {
		data |= uint32(dev.ReadRegister(offset+i)) << (i * 8)
	}
	return data
}

func TestCycleDisabled(t *testing.T) {
	cyc := timer.NewCycle()

	writeWord(cyc, timer.CycCompare, 1)
	for i := 0; i < 100; i++ {
		cyc.Tick()
	}

	test.Equate(t, readWord(cyc, timer.CycCounter), 0)
	test.ExpectedFailure(t, cyc.PendingInterrupt())
}

func TestCycleCompareMatch(t *testing.T) {
	cyc := timer.NewCycle()

	writeWord(cyc, timer.CycCompare, 10)
	writeWord(cyc, timer.CycControl, timer.CtrlEnable)

	for i := 0; i < 9; i++ {
		cyc.Tick()
	}
	test.ExpectedFailure(t, cyc.PendingInterrupt())

	cyc.Tick()
	test.ExpectedSuccess(t, cyc.PendingInterrupt())

	// one-shot mode disables the timer on the match
	test.Equate(t, readWord(cyc, timer.CycStatus)&timer.StatusRunning, 0)
}

func TestCyclePeriodicAutoReload(t *testing.T) {
	cyc := timer.NewCycle()

	writeWord(cyc, timer.CycCompare, 10)
	writeWord(cyc, timer.CycControl, timer.CtrlEnable|timer.CtrlMode|timer.CtrlExtra)

	for i := 0; i < 10; i++ {
		cyc.Tick()
	}
	test.ExpectedSuccess(t, cyc.PendingInterrupt())

	// auto-reload resets the counter and keeps the timer running
	test.Equate(t, readWord(cyc, timer.CycCounter), 0)
	test.Equate(t, readWord(cyc, timer.CycStatus)&timer.StatusRunning, int(timer.StatusRunning))
}

func TestCyclePrescaler(t *testing.T) {
	cyc := timer.NewCycle()

	writeWord(cyc, timer.CycPrescaler, 4)
	writeWord(cyc, timer.CycCompare, 100)
	writeWord(cyc, timer.CycControl, timer.CtrlEnable)

	for i := 0; i < 16; i++ {
		cyc.Tick()
	}

	test.Equate(t, readWord(cyc, timer.CycCounter), 4)
}

func TestCycleWriteOneToClear(t *testing.T) {
	cyc := timer.NewCycle()

	writeWord(cyc, timer.CycCompare, 1)
	writeWord(cyc, timer.CycControl, timer.CtrlEnable|timer.CtrlMode|timer.CtrlExtra)

	cyc.Tick()
	test.ExpectedSuccess(t, cyc.PendingInterrupt())

	// writing a zero to the pending bit has no effect
	writeWord(cyc, timer.CycControl, timer.CtrlEnable|timer.CtrlMode|timer.CtrlExtra)
	test.ExpectedSuccess(t, cyc.PendingInterrupt())

	// writing a one clears it
	writeWord(cyc, timer.CycControl, timer.CtrlEnable|timer.CtrlMode|timer.CtrlExtra|timer.CtrlPending)
	test.ExpectedFailure(t, cyc.PendingInterrupt())
	test.Equate(t, readWord(cyc, timer.CycControl)&timer.CtrlPending, 0)
}

func TestCycleFreeRun(t *testing.T) {
	cyc := timer.NewCycle()

	// a compare value of zero never matches
	writeWord(cyc, timer.CycControl, timer.CtrlEnable)
	for i := 0; i < 1000; i++ {
		cyc.Tick()
	}

	test.Equate(t, readWord(cyc, timer.CycCounter), 1000)
	test.ExpectedFailure(t, cyc.PendingInterrupt())
}
