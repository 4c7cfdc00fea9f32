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

// Package timer implements the two interrupt sources of the machine.
//
// The Cycle timer counts instruction steps, divided by a prescaler. The
// RealTime timer counts wall-clock periods at a programmable frequency
// between 1Hz and 1000Hz. Both present a register block to the memory bus
// (through the chipbus.Device interface) and a pending-interrupt line that
// the step loop composes into the mip CSR.
//
// Neither timer clears its own pending line when the interrupt is taken.
// The interrupt handler must write a 1 to bit 2 of the control register.
package timer
