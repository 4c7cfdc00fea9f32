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

	"github.com/gopherrv/gopherrv/hardware/cpu/instructions"
)

// register numbers with architectural meaning during expansion.
const (
	regZero = 0
	regRA   = 1
)

// hi returns the upper 20 bits of an address, adjusted so that the signed
// lower half produced by lo() gives back the exact address.
func hi(address uint32) uint32 {
	return (address + 0x800) >> 12
}

// lo returns the signed lower 12 bits matching hi().
func lo(address uint32) int32 {
	return int32(address) - int32(hi(address)<<12)
}

// emitInstruction expands a mnemonic (pseudo instructions included) and
// appends the resulting machine instructions to the program.
func emitInstruction(stmt statement, prog *Program) error {
	// pseudo instructions first. each rewrites itself in terms of a table
	// mnemonic
	switch stmt.mnemonic {
	case "NOP":
		if err := operandCount(stmt, 0); err != nil {
			return err
		}
		prog.Instructions = append(prog.Instructions, instructions.Instruction{Op: instructions.Addi})
		return nil

	case "MV":
		if err := operandCount(stmt, 2); err != nil {
			return err
		}
		rd, err := parseRegister(stmt.operands[0])
		if err != nil {
			return lineError(stmt.lineNum, err)
		}
		rs, err := parseRegister(stmt.operands[1])
		if err != nil {
			return lineError(stmt.lineNum, err)
		}
		prog.Instructions = append(prog.Instructions, instructions.Instruction{
			Op: instructions.Addi, Rd: rd, Rs1: rs,
		})
		return nil

	case "RET":
		if err := operandCount(stmt, 0); err != nil {
			return err
		}
		prog.Instructions = append(prog.Instructions, instructions.Instruction{
			Op: instructions.Jalr, Rd: regZero, Rs1: regRA,
		})
		return nil

	case "J":
		if err := operandCount(stmt, 1); err != nil {
			return err
		}
		return emitJump(stmt, prog, regZero, stmt.operands[0])

	case "CALL":
		if err := operandCount(stmt, 1); err != nil {
			return err
		}
		return emitJump(stmt, prog, regRA, stmt.operands[0])

	case "LA":
		if err := operandCount(stmt, 2); err != nil {
			return err
		}
		return emitLoadAddress(stmt, prog)
	}

	desc, ok := opTable[stmt.mnemonic]
	if !ok {
		return lineError(stmt.lineNum, fmt.Errorf("unknown instruction: %s", stmt.mnemonic))
	}

	if err := operandCount(stmt, operandCounts[desc.class]); err != nil {
		return err
	}

	ins := instructions.Instruction{Op: desc.op}
	var err error

	switch desc.class {
	case classR:
		err = operands(stmt, &ins.Rd, &ins.Rs1, &ins.Rs2)

	case classI:
		if err = operands(stmt, &ins.Rd, &ins.Rs1, nil); err != nil {
			break
		}
		ins.Imm, err = immOrLabel(stmt, prog, stmt.operands[2], -0x800, 0x7ff)

	case classShift:
		if err = operands(stmt, &ins.Rd, &ins.Rs1, nil); err != nil {
			break
		}
		ins.Imm, err = immediate(stmt, stmt.operands[2], 0, 31)

	case classLoad:
		if ins.Rd, err = parseRegister(stmt.operands[0]); err != nil {
			err = lineError(stmt.lineNum, err)
			break
		}
		var offset int64
		if offset, ins.Rs1, err = parseMemOperand(stmt.operands[1]); err != nil {
			err = lineError(stmt.lineNum, err)
			break
		}
		ins.Imm, err = checkRange(stmt, offset, -0x800, 0x7ff)

	case classStore:
		if ins.Rs2, err = parseRegister(stmt.operands[0]); err != nil {
			err = lineError(stmt.lineNum, err)
			break
		}
		var offset int64
		if offset, ins.Rs1, err = parseMemOperand(stmt.operands[1]); err != nil {
			err = lineError(stmt.lineNum, err)
			break
		}
		ins.Imm, err = checkRange(stmt, offset, -0x800, 0x7ff)

	case classBranch:
		if err = operands(stmt, nil, &ins.Rs1, &ins.Rs2); err != nil {
			break
		}
		ins.Imm, err = branchTarget(stmt, prog, stmt.operands[2], -0x1000, 0xffe)

	case classJal:
		if ins.Rd, err = parseRegister(stmt.operands[0]); err != nil {
			err = lineError(stmt.lineNum, err)
			break
		}
		ins.Imm, err = branchTarget(stmt, prog, stmt.operands[1], -0x100000, 0xffffe)

	case classJalr:
		if err = operands(stmt, &ins.Rd, &ins.Rs1, nil); err != nil {
			break
		}
		ins.Imm, err = immediate(stmt, stmt.operands[2], -0x800, 0x7ff)

	case classUpper:
		if ins.Rd, err = parseRegister(stmt.operands[0]); err != nil {
			err = lineError(stmt.lineNum, err)
			break
		}
		ins.Imm, err = immediate(stmt, stmt.operands[1], 0, 0xfffff)

	case classCsr:
		if err = operands(stmt, &ins.Rd, nil, nil); err != nil {
			break
		}
		if ins.Imm, err = immediate(stmt, stmt.operands[1], 0, 0xfff); err != nil {
			break
		}
		if ins.Rs1, err = parseRegister(stmt.operands[2]); err != nil {
			err = lineError(stmt.lineNum, err)
		}

	case classCsrImm:
		if err = operands(stmt, &ins.Rd, nil, nil); err != nil {
			break
		}
		if ins.Imm, err = immediate(stmt, stmt.operands[1], 0, 0xfff); err != nil {
			break
		}
		var uimm int32
		if uimm, err = immediate(stmt, stmt.operands[2], 0, 31); err != nil {
			break
		}
		ins.Rs1 = uint32(uimm)

	case classSystem:
		// no operands
	}

	if err != nil {
		return err
	}

	prog.Instructions = append(prog.Instructions, ins)
	return nil
}

// operandCount checks the number of operands against the expected count.
func operandCount(stmt statement, expected int) error {
	if len(stmt.operands) != expected {
		return lineError(stmt.lineNum,
			fmt.Errorf("%s requires %d operands, got %d", stmt.mnemonic, expected, len(stmt.operands)))
	}
	return nil
}

// operands parses up to three register operands. A nil destination is
// ignored and does not consume an operand.
func operands(stmt statement, regs ...*uint32) error {
	idx := 0
	for _, r := range regs {
		if r == nil {
			continue
		}
		n, err := parseRegister(stmt.operands[idx])
		if err != nil {
			return lineError(stmt.lineNum, err)
		}
		*r = n
		idx++
	}
	return nil
}

// checkRange validates a literal against the immediate range of the
// instruction.
func checkRange(stmt statement, v int64, min, max int64) (int32, error) {
	if v < min || v > max {
		return 0, lineError(stmt.lineNum,
			fmt.Errorf("immediate %d out of range (%d to %d)", v, min, max))
	}
	return int32(v), nil
}

// immediate parses and range-checks a literal operand.
func immediate(stmt statement, operand string, min, max int64) (int32, error) {
	v, err := parseInt(operand)
	if err != nil {
		return 0, lineError(stmt.lineNum, err)
	}
	return checkRange(stmt, v, min, max)
}

// immOrLabel parses an I-type immediate operand: either a range-checked
// literal or a label reference, which resolves to the label's absolute
// address.
func immOrLabel(stmt statement, prog *Program, operand string, min, max int64) (int32, error) {
	if isLabelRef(operand) {
		addr, err := resolve(stmt, prog, operand)
		if err != nil {
			return 0, lineError(stmt.lineNum, err)
		}
		return int32(addr), nil
	}
	return immediate(stmt, operand, min, max)
}

// branchTarget parses a branch or jump target operand: either a label,
// which resolves to an offset relative to the statement address, or a
// literal offset. Offsets must be even.
func branchTarget(stmt statement, prog *Program, operand string, min, max int64) (int32, error) {
	var offset int64

	if isLabelRef(operand) {
		addr, err := resolve(stmt, prog, operand)
		if err != nil {
			return 0, lineError(stmt.lineNum, err)
		}
		offset = int64(addr) - int64(stmt.address)
	} else {
		v, err := parseInt(operand)
		if err != nil {
			return 0, lineError(stmt.lineNum, err)
		}
		offset = v
	}

	if offset%2 != 0 {
		return 0, lineError(stmt.lineNum,
			fmt.Errorf("branch target must be a multiple of two: %s", operand))
	}

	return checkRange(stmt, offset, min, max)
}

// emitJump emits the expansion of the J and CALL pseudo instructions.
func emitJump(stmt statement, prog *Program, rd uint32, target string) error {
	offset, err := branchTarget(stmt, prog, target, -0x100000, 0xffffe)
	if err != nil {
		return err
	}

	prog.Instructions = append(prog.Instructions, instructions.Instruction{
		Op: instructions.Jal, Rd: rd, Imm: offset,
	})
	return nil
}

// emitLoadAddress emits the LUI/ADDI pair of the LA pseudo instruction.
func emitLoadAddress(stmt statement, prog *Program) error {
	rd, err := parseRegister(stmt.operands[0])
	if err != nil {
		return lineError(stmt.lineNum, err)
	}

	var address uint32
	if isLabelRef(stmt.operands[1]) {
		address, err = resolve(stmt, prog, stmt.operands[1])
		if err != nil {
			return lineError(stmt.lineNum, err)
		}
	} else {
		v, err := parseInt(stmt.operands[1])
		if err != nil {
			return lineError(stmt.lineNum, err)
		}
		if v < 0 || v > 0xffffffff {
			return lineError(stmt.lineNum, fmt.Errorf("address out of range: %s", stmt.operands[1]))
		}
		address = uint32(v)
	}

	prog.Instructions = append(prog.Instructions,
		instructions.Instruction{Op: instructions.Lui, Rd: rd, Imm: int32(hi(address))},
		instructions.Instruction{Op: instructions.Addi, Rd: rd, Rs1: rd, Imm: lo(address)},
	)
	return nil
}
