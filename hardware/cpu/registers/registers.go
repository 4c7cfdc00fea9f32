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

// Package registers implements the general purpose register file of the
// CPU. Thirty-two unsigned 32bit registers of which register zero is
// hardwired to the value zero.
//
// Registers can be referred to by number (x0 to x31) or by their ABI names
// (ra, sp, t0, etc). The Number() function converts either form; names are
// case insensitive.
package registers

import (
	"fmt"
	"strconv"
	"strings"
)

// NumRegisters in the register file.
const NumRegisters = 32

// File is the general purpose register file.
type File struct {
	regs [NumRegisters]uint32
}

// Reset every register to zero.
func (f *File) Reset() {
	for i := range f.regs {
		f.regs[i] = 0
	}
}

// Read the value of register reg. Register zero always reads as zero.
func (f *File) Read(reg uint32) uint32 {
	return f.regs[reg&0x1f]
}

// Write a value to register reg. Writes to register zero are discarded.
func (f *File) Write(reg uint32, value uint32) {
	reg &= 0x1f
	if reg == 0 {
		return
	}
	f.regs[reg] = value
}

// String returns the register file formatted in four columns, each register
// labelled with its ABI name.
func (f *File) String() string {
	s := strings.Builder{}
	for i := 0; i < NumRegisters; i += 4 {
		for j := i; j < i+4; j++ {
			s.WriteString(fmt.Sprintf("x%-2d (%-5s): %08x   ", j, Names[j], f.regs[j]))
		}
		s.WriteString("\n")
	}
	return s.String()
}

// Names of the registers according to the RV32 ABI, indexed by register
// number.
var Names = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

// aliases that do not appear in the Names table.
var aliases = map[string]uint32{
	"fp": 8,
}

// Number converts a register name to a register number. The name can be
// the xN form or an ABI name; case is not significant.
func Number(name string) (uint32, bool) {
	name = strings.ToLower(strings.TrimSpace(name))

	if n, ok := aliases[name]; ok {
		return n, true
	}

	for i := range Names {
		if name == Names[i] {
			return uint32(i), true
		}
	}

	if strings.HasPrefix(name, "x") {
		n, err := strconv.Atoi(name[1:])
		if err == nil && n >= 0 && n < NumRegisters {
			return uint32(n), true
		}
	}

	return 0, false
}
