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

// Package cpu implements the processor of the machine: the register file
// (in the registers sub-package), the program counter, the machine-mode
// CSR file, and the execution of decoded instructions (whose representation
// is in the instructions sub-package).
//
// The CPU does not fetch instructions itself. The step loop in the
// hardware package fetches the decoded instruction at PC and hands it to
// ExecuteInstruction(). Nor does the CPU decide when a trap is taken; it
// provides PendingTrap(), EnterTrap() and Mret() and the step loop
// sequences them.
package cpu
