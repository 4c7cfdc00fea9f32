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

// Package assembler translates assembly source into the decoded
// instruction representation executed by the CPU.
//
// The assembler makes two passes. The first pass tokenises every line,
// selects the current section (.text or .data), records label definitions
// and measures how many bytes each statement will occupy. The second pass
// resolves label references - to absolute addresses for ALU immediates and
// LA, to PC-relative offsets for branches and jumps - expands the pseudo
// instructions and emits the instruction vector and the data image.
//
// Comments begin with # or ; and run to the end of the line. Mnemonics,
// directives and register names are case insensitive; labels are case
// sensitive. Integer literals can be decimal, hexadecimal (0x), binary
// (0b) or a single-quoted character with the usual escapes.
//
// Pseudo instructions: NOP, MV, LA, CALL, RET and J. All expand to a
// single machine instruction except LA which becomes a LUI/ADDI pair.
//
// All errors are reported with the one-based line number of the offending
// statement.
package assembler
