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

// Package memory implements the flat one megabyte address space of the
// machine. Values are stored little-endian. Word accesses must be four
// byte aligned and halfword accesses two byte aligned.
//
// Addresses that fall inside a device range (see the memorymap package)
// are dispatched to the attached chipbus.Device rather than the backing
// array. Word and halfword accesses to a device are decomposed into byte
// accesses in little-endian order.
//
// Writes into the text region can be refused by enabling write
// protection, in which case a curated error with the ProtectionError
// pattern is returned. All bus faults are also recorded in the LastFault
// field for the benefit of the exception reporter.
package memory
