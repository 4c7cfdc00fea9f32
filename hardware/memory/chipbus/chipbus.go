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

// Package chipbus defines the interface between the memory sub-system and
// the devices mapped into the address space (the display and the two
// timers).
//
// Device registers are byte addressed. The memory package performs
// word-sized accesses as four byte accesses in little-endian order, after
// its own alignment checks. Devices therefore never see a misaligned
// access and never need to know the width of the CPU operation that
// reached them.
package chipbus

// Device is any hardware device with registers mapped into the address
// space. Offsets are relative to the device's origin in the memory map.
//
// ReadRegister and WriteRegister must not fail: the memory package has
// already bounds-checked the offset against the device's register block.
type Device interface {
	ReadRegister(offset uint32) uint8
	WriteRegister(offset uint32, data uint8)
}
