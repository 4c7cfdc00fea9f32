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

package memory

import (
	"github.com/gopherrv/gopherrv/curated"
	"github.com/gopherrv/gopherrv/hardware/memory/chipbus"
	"github.com/gopherrv/gopherrv/hardware/memory/memorymap"
)

// Error patterns raised by the memory package.
const (
	AccessError     = "memory: address out of bounds: %08x (%d byte access)"
	AlignmentError  = "memory: unaligned address: %08x (%d byte access)"
	ProtectionError = "memory: write to protected text segment: %08x"
)

// Fault records the raw details of the most recent bus error. The exception
// reporter uses this rather than parsing the error message.
type Fault struct {
	Valid   bool
	Address uint32
	Size    int
	Write   bool
}

// Memory is the flat address space of the machine.
type Memory struct {
	ram []uint8

	// whether writes to the text region should fail
	ProtectText bool

	// details of the most recent bus error
	LastFault Fault

	// devices attached to the MMIO ranges. the display serves both the
	// buffer and control areas
	display chipbus.Device
	cycle   chipbus.Device
	rtc     chipbus.Device
}

// NewMemory is the preferred method of initialisation for the Memory type.
// Devices are attached afterwards with the Attach() function.
func NewMemory() *Memory {
	return &Memory{
		ram: make([]uint8, memorymap.Memtop),
	}
}

// Attach a device to the area of memory it serves. Attaching to an area
// that takes no device is a no-op.
func (mem *Memory) Attach(area memorymap.Area, dev chipbus.Device) {
	switch area {
	case memorymap.DisplayBuffer, memorymap.DisplayCtrl:
		mem.display = dev
	case memorymap.CycleTimer:
		mem.cycle = dev
	case memorymap.RealTimeTimer:
		mem.rtc = dev
	}
}

// Reset zeroes the backing array. Attached devices are not touched; they
// have their own Reset functions.
func (mem *Memory) Reset() {
	for i := range mem.ram {
		mem.ram[i] = 0
	}
	mem.LastFault = Fault{}
}

// device returns the attached device for the address, along with the
// offset of the address relative to the device origin. returns nil if the
// address is not served by a device.
func (mem *Memory) device(address uint32) (chipbus.Device, uint32) {
	switch memorymap.MapAddress(address) {
	case memorymap.DisplayBuffer, memorymap.DisplayCtrl:
		return mem.display, address - memorymap.OriginDisplay
	case memorymap.CycleTimer:
		return mem.cycle, address - memorymap.OriginCycTimer
	case memorymap.RealTimeTimer:
		return mem.rtc, address - memorymap.OriginRTTimer
	}
	return nil, 0
}

func (mem *Memory) fault(address uint32, size int, write bool, pattern string) error {
	mem.LastFault = Fault{
		Valid:   true,
		Address: address,
		Size:    size,
		Write:   write,
	}

	if pattern == ProtectionError {
		return curated.Errorf(pattern, address)
	}
	return curated.Errorf(pattern, address, size)
}

// check alignment, bounds and write-protection for an access of the given
// size. a size of 1 is never misaligned. alignment is tested first: a word
// access at 0xffffd is an alignment fault, not a bounds fault.
func (mem *Memory) check(address uint32, size int, write bool) error {
	if size > 1 && address%uint32(size) != 0 {
		return mem.fault(address, size, write, AlignmentError)
	}

	if address >= memorymap.Memtop || address+uint32(size) > memorymap.Memtop {
		return mem.fault(address, size, write, AccessError)
	}

	if write && mem.ProtectText && memorymap.MapAddress(address) == memorymap.Text {
		return mem.fault(address, size, write, ProtectionError)
	}

	return nil
}

// readByte without bounds checking. the caller has already called check().
func (mem *Memory) readByte(address uint32) uint8 {
	if dev, offset := mem.device(address); dev != nil {
		return dev.ReadRegister(offset)
	}
	return mem.ram[address]
}

// writeByte without bounds checking. the caller has already called check().
func (mem *Memory) writeByte(address uint32, data uint8) {
	if dev, offset := mem.device(address); dev != nil {
		dev.WriteRegister(offset, data)
		return
	}
	mem.ram[address] = data
}

// ReadByte returns the byte at address.
func (mem *Memory) ReadByte(address uint32) (uint8, error) {
	if err := mem.check(address, 1, false); err != nil {
		return 0, err
	}
	return mem.readByte(address), nil
}

// WriteByte stores a byte at address.
func (mem *Memory) WriteByte(address uint32, data uint8) error {
	if err := mem.check(address, 1, true); err != nil {
		return err
	}
	mem.writeByte(address, data)
	return nil
}

// ReadHalfword returns the 16bit value at address. The address must be two
// byte aligned.
func (mem *Memory) ReadHalfword(address uint32) (uint16, error) {
	if err := mem.check(address, 2, false); err != nil {
		return 0, err
	}
	return uint16(mem.readByte(address)) | uint16(mem.readByte(address+1))<<8, nil
}

// WriteHalfword stores a 16bit value at address. The address must be two
// byte aligned.
func (mem *Memory) WriteHalfword(address uint32, data uint16) error {
	if err := mem.check(address, 2, true); err != nil {
		return err
	}
	mem.writeByte(address, uint8(data))
	mem.writeByte(address+1, uint8(data>>8))
	return nil
}

// ReadWord returns the 32bit value at address. The address must be four
// byte aligned.
func (mem *Memory) ReadWord(address uint32) (uint32, error) {
	if err := mem.check(address, 4, false); err != nil {
		return 0, err
	}

	var data uint32
	for i := uint32(0); i < 4; i++ {
		data |= uint32(mem.readByte(address+i)) << (i * 8)
	}
	return data, nil
}

// WriteWord stores a 32bit value at address. The address must be four byte
// aligned.
func (mem *Memory) WriteWord(address uint32, data uint32) error {
	if err := mem.check(address, 4, true); err != nil {
		return err
	}

	for i := uint32(0); i < 4; i++ {
		mem.writeByte(address+i, uint8(data>>(i*8)))
	}
	return nil
}

// LoadProgram copies a program image into memory at the origin address,
// bypassing write protection. Used when loading the data image produced by
// the assembler.
func (mem *Memory) LoadProgram(program []uint8, origin uint32) error {
	if origin >= memorymap.Memtop || origin+uint32(len(program)) > memorymap.Memtop {
		return curated.Errorf(AccessError, origin, len(program))
	}
	copy(mem.ram[origin:], program)
	return nil
}

// Peek returns the byte at address without any checks and without device
// side effects. Used by the debugger and the exception reporter.
func (mem *Memory) Peek(address uint32) uint8 {
	if address >= memorymap.Memtop {
		return 0
	}
	if dev, offset := mem.device(address); dev != nil {
		return dev.ReadRegister(offset)
	}
	return mem.ram[address]
}
