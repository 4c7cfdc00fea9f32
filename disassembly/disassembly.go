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

// Package disassembly produces a listing of an assembled program. Because
// the assembler emits decoded instructions rather than encoded words, the
// listing is simply the String() form of every instruction, annotated
// with addresses and label definitions.
//
// Assembling the output of FormatInstruction() produces the same
// instruction again. The listing from Write() adds addresses and label
// lines and is not itself assembler input.
package disassembly

import (
	"fmt"
	"io"

	"github.com/gopherrv/gopherrv/assembler"
)

// Disassembly is a listing of an assembled program.
type Disassembly struct {
	prog *assembler.Program
}

// FromProgram is the preferred method of initialisation for the
// Disassembly type.
func FromProgram(prog *assembler.Program) *Disassembly {
	return &Disassembly{prog: prog}
}

// FormatInstruction returns the assembly text of the numbered instruction.
func (dsm *Disassembly) FormatInstruction(idx int) string {
	return dsm.prog.Instructions[idx].String()
}

// Write the listing to the io.Writer. Every line shows the instruction
// address; lines that define a label are preceded by the label name.
func (dsm *Disassembly) Write(output io.Writer) error {
	for i := range dsm.prog.Instructions {
		address := dsm.prog.InstructionAddress(i)

		if name, ok := dsm.prog.LabelFor(address); ok {
			if _, err := fmt.Fprintf(output, "%s:\n", name); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(output, "%08x    %s\n", address, dsm.FormatInstruction(i)); err != nil {
			return err
		}
	}

	return nil
}
