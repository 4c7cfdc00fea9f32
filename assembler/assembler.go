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

package assembler

import (
	"fmt"
	"strings"

	"github.com/gopherrv/gopherrv/curated"
	"github.com/gopherrv/gopherrv/hardware/cpu/instructions"
	"github.com/gopherrv/gopherrv/hardware/memory/memorymap"
	"github.com/gopherrv/gopherrv/logger"
)

// AssemblyError is the pattern of every error raised by the assembler. The
// first value is the one-based line number of the offending statement.
const AssemblyError = "assembly: line %d: %v"

// Program is the result of assembly: the decoded instruction vector, the
// data image and the resolved label table.
//
// The instruction at address A is Instructions[A/4]. Text always begins at
// address zero.
type Program struct {
	Instructions []instructions.Instruction
	Data         []byte
	DataOrigin   uint32
	Labels       map[string]uint32
}

// InstructionAddress returns the address of the numbered instruction.
func (prog *Program) InstructionAddress(idx int) uint32 {
	return uint32(idx) * 4
}

// LabelFor returns the name of a label defined at the address, if any.
func (prog *Program) LabelFor(address uint32) (string, bool) {
	for name, addr := range prog.Labels {
		if addr == address {
			return name, true
		}
	}
	return "", false
}

// statement is a single tokenised source line, annotated with the address
// it will occupy.
type statement struct {
	lineNum  int
	mnemonic string
	operands []string
	address  uint32
}

// Assemble source code into a Program.
func Assemble(source string) (*Program, error) {
	prog := &Program{
		DataOrigin: memorymap.OriginData,
		Labels:     make(map[string]uint32),
	}

	stmts, dataSize, err := pass1(source, prog.Labels)
	if err != nil {
		return nil, err
	}

	prog.Data = make([]byte, dataSize)

	if err := pass2(stmts, prog); err != nil {
		return nil, err
	}

	logger.Logf("assembler", "%d instructions, %d data bytes, %d labels",
		len(prog.Instructions), len(prog.Data), len(prog.Labels))

	return prog, nil
}

// lineError wraps a parsing problem in the package error pattern.
func lineError(lineNum int, err error) error {
	return curated.Errorf(AssemblyError, lineNum, err)
}

// splitLabel divides a line into its label definition (if any) and the
// remainder. The colon must appear before any whitespace for the line to
// be treated as labelled, so that a character literal ':' is not mistaken
// for a definition.
func splitLabel(line string) (string, string) {
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ':' {
			return line[:i], strings.TrimSpace(line[i+1:])
		}
		if c == ' ' || c == '\t' || c == '\'' || c == '"' {
			break
		}
	}
	return "", line
}

// pass1 tokenises the source, assigns addresses, and collects label
// definitions. Returns the statement list and the size of the data image.
func pass1(source string, labels map[string]uint32) ([]statement, uint32, error) {
	var stmts []statement

	inText := true
	textAddr := memorymap.OriginText
	dataAddr := memorymap.OriginData

	cursor := func() uint32 {
		if inText {
			return textAddr
		}
		return dataAddr
	}

	for num, raw := range strings.Split(source, "\n") {
		lineNum := num + 1

		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		if name, rest := splitLabel(line); name != "" {
			if _, ok := labels[name]; ok {
				return nil, 0, lineError(lineNum, fmt.Errorf("duplicate label: %s", name))
			}
			labels[name] = cursor()

			line = rest
			if line == "" {
				continue
			}
		}

		fields := splitFields(line)
		stmt := statement{
			lineNum:  lineNum,
			mnemonic: strings.ToUpper(fields[0]),
			operands: fields[1:],
		}

		switch stmt.mnemonic {
		case ".TEXT":
			inText = true
			continue
		case ".DATA":
			inText = false
			continue

		case ".WORD":
			if inText {
				return nil, 0, lineError(lineNum, fmt.Errorf("%s is only valid in the data section", stmt.mnemonic))
			}
			if len(stmt.operands) == 0 {
				return nil, 0, lineError(lineNum, fmt.Errorf(".word requires at least one value"))
			}
			stmt.address = dataAddr
			dataAddr += uint32(len(stmt.operands)) * 4

		case ".STRING", ".ASCIIZ":
			if inText {
				return nil, 0, lineError(lineNum, fmt.Errorf("%s is only valid in the data section", stmt.mnemonic))
			}
			if len(stmt.operands) != 1 {
				return nil, 0, lineError(lineNum, fmt.Errorf("%s requires a single string", strings.ToLower(stmt.mnemonic)))
			}
			b, err := parseString(stmt.operands[0])
			if err != nil {
				return nil, 0, lineError(lineNum, err)
			}
			stmt.address = dataAddr
			dataAddr += uint32(len(b)) + 1

		default:
			if strings.HasPrefix(stmt.mnemonic, ".") {
				return nil, 0, lineError(lineNum, fmt.Errorf("unknown directive: %s", strings.ToLower(stmt.mnemonic)))
			}
			if !inText {
				return nil, 0, lineError(lineNum, fmt.Errorf("instructions are only valid in the text section"))
			}

			stmt.address = textAddr
			textAddr += instructionSize(stmt.mnemonic)
		}

		stmts = append(stmts, stmt)

		if dataAddr > memorymap.MemtopData {
			return nil, 0, lineError(lineNum, fmt.Errorf("data section overflows the data region"))
		}
		if textAddr > memorymap.MemtopText {
			return nil, 0, lineError(lineNum, fmt.Errorf("program overflows the text region"))
		}
	}

	return stmts, dataAddr - memorymap.OriginData, nil
}

// instructionSize returns the number of text bytes a mnemonic occupies.
// Every machine instruction is four bytes; the LA pseudo instruction
// expands to two machine instructions.
func instructionSize(mnemonic string) uint32 {
	if mnemonic == "LA" {
		return 8
	}
	return 4
}

// pass2 resolves labels and emits the instruction vector and data image.
func pass2(stmts []statement, prog *Program) error {
	for _, stmt := range stmts {
		var err error

		switch stmt.mnemonic {
		case ".WORD":
			err = emitWords(stmt, prog)
		case ".STRING", ".ASCIIZ":
			err = emitString(stmt, prog)
		default:
			err = emitInstruction(stmt, prog)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// resolve a label reference to its absolute address.
func resolve(stmt statement, prog *Program, name string) (uint32, error) {
	addr, ok := prog.Labels[name]
	if !ok {
		return 0, fmt.Errorf("undefined label: %s", name)
	}
	return addr, nil
}

// emitWords appends the values of a .word directive to the data image.
func emitWords(stmt statement, prog *Program) error {
	offset := stmt.address - prog.DataOrigin

	for _, operand := range stmt.operands {
		var value uint32

		if isLabelRef(operand) {
			addr, err := resolve(stmt, prog, operand)
			if err != nil {
				return lineError(stmt.lineNum, err)
			}
			value = addr
		} else {
			v, err := parseInt(operand)
			if err != nil {
				return lineError(stmt.lineNum, err)
			}
			if v < -0x80000000 || v > 0xffffffff {
				return lineError(stmt.lineNum, fmt.Errorf("word value out of range: %s", operand))
			}
			value = uint32(v)
		}

		prog.Data[offset] = uint8(value)
		prog.Data[offset+1] = uint8(value >> 8)
		prog.Data[offset+2] = uint8(value >> 16)
		prog.Data[offset+3] = uint8(value >> 24)
		offset += 4
	}

	return nil
}

// emitString appends the bytes of a .string/.asciiz directive, with a
// terminating NUL, to the data image.
func emitString(stmt statement, prog *Program) error {
	b, err := parseString(stmt.operands[0])
	if err != nil {
		return lineError(stmt.lineNum, err)
	}

	offset := stmt.address - prog.DataOrigin
	copy(prog.Data[offset:], b)
	prog.Data[offset+uint32(len(b))] = 0

	return nil
}
