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

// Package report formats a diagnostic snapshot of the machine at the
// moment of a fatal error: the error itself, the faulting instruction,
// the register and CSR files, the timers, and a hexdump of memory around
// the fault address.
//
// The core packages carry raw state (fault address, access size, PC) and
// never format text themselves; this package is the single place where
// that state becomes a human readable report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gopherrv/gopherrv/hardware"
	"github.com/gopherrv/gopherrv/hardware/memory/memorymap"
)

// number of bytes of memory context shown either side of a fault address.
const contextBytes = 32

// Fault writes a diagnostic snapshot of the machine to the io.Writer,
// explaining the supplied error.
func Fault(output io.Writer, err error, vm *hardware.VM) {
	div := strings.Repeat("=", 70)

	fmt.Fprintf(output, "%s\nfatal: %v\n%s\n", div, err, div)

	pc := vm.PC()
	fmt.Fprintf(output, "pc: %08x (%s)", pc, memorymap.MapAddress(pc))
	if vm.Prog != nil {
		idx := int(pc >> 2)
		if pc%4 == 0 && idx < len(vm.Prog.Instructions) {
			fmt.Fprintf(output, "    instruction: %s", vm.Prog.Instructions[idx].String())
		}
	}
	fmt.Fprintf(output, "\ninstructions executed: %d\n\n", vm.CPU.InstructionCount)

	fmt.Fprintf(output, "registers:\n%s\n", vm.CPU.Regs.String())
	fmt.Fprintf(output, "csr: %s\nmip: %08x\n\n", vm.CPU.CSR.String(), vm.Mip())

	fmt.Fprintf(output, "cycle timer: %s\nreal-time timer: %s\n", vm.CycTimer.String(), vm.RTTimer.String())

	if f := vm.Mem.LastFault; f.Valid {
		access := "read"
		if f.Write {
			access = "write"
		}
		fmt.Fprintf(output, "\nfault: %d byte %s at %08x (%s)\n",
			f.Size, access, f.Address, memorymap.MapAddress(f.Address))
		hexdump(output, vm, f.Address)
	}
}

// hexdump prints the memory either side of the address, sixteen bytes per
// line with an ASCII sidebar.
func hexdump(output io.Writer, vm *hardware.VM, address uint32) {
	start := address &^ 0x0f
	if start >= contextBytes {
		start -= contextBytes
	} else {
		start = 0
	}

	for line := uint32(0); line < contextBytes*2/16; line++ {
		addr := start + line*16
		if addr >= memorymap.Memtop {
			break
		}

		hex := strings.Builder{}
		ascii := strings.Builder{}
		for i := uint32(0); i < 16; i++ {
			b := vm.Mem.Peek(addr + i)
			hex.WriteString(fmt.Sprintf("%02x ", b))
			if b >= 0x20 && b <= 0x7e {
				ascii.WriteByte(b)
			} else {
				ascii.WriteByte('.')
			}
		}

		marker := " "
		if address >= addr && address < addr+16 {
			marker = ">"
		}

		fmt.Fprintf(output, "%s %08x  %s %s\n", marker, addr, hex.String(), ascii.String())
	}
}
