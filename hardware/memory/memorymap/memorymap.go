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

// Package memorymap describes the address space of the machine. One megabyte
// of addressable memory divided into program/data regions and a memory
// mapped IO block in the top 64KB.
//
// The MapAddress() function converts an address into the Area it falls
// within. The memory package drags the address down into the range of a
// device's own register block by subtracting the area origin before
// passing it to the device.
package memorymap

// Area represents the different areas of memory.
type Area int

func (a Area) String() string {
	switch a {
	case Text:
		return "TEXT"
	case Data:
		return "DATA"
	case Heap:
		return "HEAP"
	case Stack:
		return "STACK"
	case RAM:
		return "RAM"
	case DisplayBuffer:
		return "DISPLAY"
	case DisplayCtrl:
		return "DISPLAY CTRL"
	case CycleTimer:
		return "CYCLE TIMER"
	case RealTimeTimer:
		return "REALTIME TIMER"
	}

	return "undefined"
}

// The different memory areas in the machine.
const (
	Undefined Area = iota
	Text
	Data
	Heap
	Stack
	RAM
	DisplayBuffer
	DisplayCtrl
	CycleTimer
	RealTimeTimer
)

// The origin and memory top for each area of memory. Origins are inclusive,
// memtops are exclusive. Checking which area an address falls within is
// handled by the MapAddress() function.
const (
	OriginText     = uint32(0x00000)
	MemtopText     = uint32(0x10000)
	OriginData     = uint32(0x10000)
	MemtopData     = uint32(0x40000)
	OriginHeap     = uint32(0x40000)
	MemtopHeap     = uint32(0x80000)
	OriginStack    = uint32(0x80000)
	MemtopStack    = uint32(0xc0000)
	OriginRAM      = uint32(0xc0000)
	MemtopRAM      = uint32(0xf0000)
	OriginDisplay  = uint32(0xf0000)
	MemtopDisplay  = uint32(0xf7d00)
	OriginDispCtrl = uint32(0xf7d00)
	MemtopDispCtrl = uint32(0xf7d80)
	OriginCycTimer = uint32(0xf7e00)
	MemtopCycTimer = uint32(0xf7e14)
	OriginRTTimer  = uint32(0xf7e20)
	MemtopRTTimer  = uint32(0xf7e34)
)

// Memtop is the top of the address space. Any address greater than or equal
// to this value is out of bounds.
const Memtop = uint32(0x100000)

// StackOrigin is the initial value of the stack pointer register. The stack
// grows downwards from the word-aligned address just below the top of the
// stack area.
const StackOrigin = uint32(0xbfffc)

// MapAddress returns the Area the address falls within.
//
// Addresses between the defined MMIO blocks but inside the top 64KB are
// Undefined; a load or store to an Undefined address is a plain RAM-like
// access with no device side effects.
func MapAddress(address uint32) Area {
	// note that the order of these filters is important. the MMIO blocks
	// must be checked before the general top-of-memory test
	if address >= Memtop {
		return Undefined
	}

	switch {
	case address >= OriginRTTimer && address < MemtopRTTimer:
		return RealTimeTimer
	case address >= OriginCycTimer && address < MemtopCycTimer:
		return CycleTimer
	case address >= OriginDispCtrl && address < MemtopDispCtrl:
		return DisplayCtrl
	case address >= OriginDisplay && address < MemtopDisplay:
		return DisplayBuffer
	case address >= MemtopRAM:
		// inside the MMIO quarter but between the device blocks
		return Undefined
	case address >= OriginRAM:
		return RAM
	case address >= OriginStack:
		return Stack
	case address >= OriginHeap:
		return Heap
	case address >= OriginData:
		return Data
	}

	return Text
}
