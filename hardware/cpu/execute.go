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

package cpu

import (
	"github.com/gopherrv/gopherrv/curated"
	"github.com/gopherrv/gopherrv/hardware/cpu/instructions"
)

// Error patterns raised by the cpu package.
const (
	// unreachable if the assembler is correct
	UnknownInstruction = "cpu: unknown instruction (%v)"
)

// ExecuteInstruction performs a single decoded instruction, writing the
// result registers and advancing PC. Control instructions set PC directly;
// everything else advances it by four.
//
// All arithmetic is modulo 2^32. Signed operations convert through int32.
func (mc *CPU) ExecuteInstruction(ins instructions.Instruction) error {
	rs1 := mc.Regs.Read(ins.Rs1)
	rs2 := mc.Regs.Read(ins.Rs2)
	imm := uint32(ins.Imm)

	switch ins.Op {
	case instructions.Add:
		mc.Regs.Write(ins.Rd, rs1+rs2)
	case instructions.Sub:
		mc.Regs.Write(ins.Rd, rs1-rs2)
	case instructions.And:
		mc.Regs.Write(ins.Rd, rs1&rs2)
	case instructions.Or:
		mc.Regs.Write(ins.Rd, rs1|rs2)
	case instructions.Xor:
		mc.Regs.Write(ins.Rd, rs1^rs2)
	case instructions.Sll:
		mc.Regs.Write(ins.Rd, rs1<<(rs2&0x1f))
	case instructions.Srl:
		mc.Regs.Write(ins.Rd, rs1>>(rs2&0x1f))
	case instructions.Sra:
		mc.Regs.Write(ins.Rd, uint32(int32(rs1)>>(rs2&0x1f)))
	case instructions.Slt:
		mc.Regs.Write(ins.Rd, boolToReg(int32(rs1) < int32(rs2)))
	case instructions.Sltu:
		mc.Regs.Write(ins.Rd, boolToReg(rs1 < rs2))

	case instructions.Mul:
		mc.Regs.Write(ins.Rd, rs1*rs2)
	case instructions.Div:
		mc.Regs.Write(ins.Rd, div(rs1, rs2))
	case instructions.Divu:
		if rs2 == 0 {
			mc.Regs.Write(ins.Rd, 0xffffffff)
		} else {
			mc.Regs.Write(ins.Rd, rs1/rs2)
		}
	case instructions.Rem:
		mc.Regs.Write(ins.Rd, rem(rs1, rs2))
	case instructions.Remu:
		if rs2 == 0 {
			mc.Regs.Write(ins.Rd, rs1)
		} else {
			mc.Regs.Write(ins.Rd, rs1%rs2)
		}

	case instructions.Addi:
		mc.Regs.Write(ins.Rd, rs1+imm)
	case instructions.Andi:
		mc.Regs.Write(ins.Rd, rs1&imm)
	case instructions.Ori:
		mc.Regs.Write(ins.Rd, rs1|imm)
	case instructions.Xori:
		mc.Regs.Write(ins.Rd, rs1^imm)
	case instructions.Slli:
		mc.Regs.Write(ins.Rd, rs1<<(imm&0x1f))
	case instructions.Srli:
		mc.Regs.Write(ins.Rd, rs1>>(imm&0x1f))
	case instructions.Srai:
		mc.Regs.Write(ins.Rd, uint32(int32(rs1)>>(imm&0x1f)))
	case instructions.Slti:
		mc.Regs.Write(ins.Rd, boolToReg(int32(rs1) < ins.Imm))
	case instructions.Sltiu:
		mc.Regs.Write(ins.Rd, boolToReg(rs1 < imm))

	case instructions.Lw:
		v, err := mc.mem.ReadWord(rs1 + imm)
		if err != nil {
			return err
		}
		mc.Regs.Write(ins.Rd, v)
	case instructions.Lh:
		v, err := mc.mem.ReadHalfword(rs1 + imm)
		if err != nil {
			return err
		}
		mc.Regs.Write(ins.Rd, uint32(int32(int16(v))))
	case instructions.Lhu:
		v, err := mc.mem.ReadHalfword(rs1 + imm)
		if err != nil {
			return err
		}
		mc.Regs.Write(ins.Rd, uint32(v))
	case instructions.Lb:
		v, err := mc.mem.ReadByte(rs1 + imm)
		if err != nil {
			return err
		}
		mc.Regs.Write(ins.Rd, uint32(int32(int8(v))))
	case instructions.Lbu:
		v, err := mc.mem.ReadByte(rs1 + imm)
		if err != nil {
			return err
		}
		mc.Regs.Write(ins.Rd, uint32(v))

	case instructions.Sw:
		if err := mc.mem.WriteWord(rs1+imm, rs2); err != nil {
			return err
		}
	case instructions.Sh:
		if err := mc.mem.WriteHalfword(rs1+imm, uint16(rs2)); err != nil {
			return err
		}
	case instructions.Sb:
		if err := mc.mem.WriteByte(rs1+imm, uint8(rs2)); err != nil {
			return err
		}

	case instructions.Beq:
		return mc.branch(rs1 == rs2, imm)
	case instructions.Bne:
		return mc.branch(rs1 != rs2, imm)
	case instructions.Blt:
		return mc.branch(int32(rs1) < int32(rs2), imm)
	case instructions.Bge:
		return mc.branch(int32(rs1) >= int32(rs2), imm)
	case instructions.Bltu:
		return mc.branch(rs1 < rs2, imm)
	case instructions.Bgeu:
		return mc.branch(rs1 >= rs2, imm)

	case instructions.Jal:
		mc.Regs.Write(ins.Rd, mc.PC+4)
		mc.PC += imm
		return nil
	case instructions.Jalr:
		target := (rs1 + imm) &^ 1
		mc.Regs.Write(ins.Rd, mc.PC+4)
		mc.PC = target
		return nil

	case instructions.Lui:
		mc.Regs.Write(ins.Rd, imm<<12)
	case instructions.Auipc:
		mc.Regs.Write(ins.Rd, mc.PC+imm<<12)

	case instructions.Csrrw:
		mc.csrAtomic(ins, func(uint32) uint32 { return rs1 })
	case instructions.Csrrs:
		mc.csrAtomic(ins, func(old uint32) uint32 { return old | rs1 })
	case instructions.Csrrc:
		mc.csrAtomic(ins, func(old uint32) uint32 { return old &^ rs1 })
	case instructions.Csrrwi:
		mc.csrAtomic(ins, func(uint32) uint32 { return ins.Rs1 & 0x1f })
	case instructions.Csrrsi:
		mc.csrAtomic(ins, func(old uint32) uint32 { return old | ins.Rs1&0x1f })
	case instructions.Csrrci:
		mc.csrAtomic(ins, func(old uint32) uint32 { return old &^ (ins.Rs1 & 0x1f) })

	case instructions.Mret:
		mc.Mret()
		return nil
	case instructions.Wfi:
		mc.WFI = true
	case instructions.Halt:
		mc.Halted = true
		return nil

	default:
		return curated.Errorf(UnknownInstruction, ins)
	}

	mc.PC += 4
	return nil
}

// branch to PC+offset if the condition is taken.
func (mc *CPU) branch(taken bool, offset uint32) error {
	if taken {
		mc.PC += offset
	} else {
		mc.PC += 4
	}
	return nil
}

// csrAtomic performs the read-modify-write common to all six CSR
// instructions. The old value is written to rd and the function result to
// the CSR.
//
// The write is performed unconditionally, even when the source is x0 or a
// zero immediate. The result is the same as skipping the write because the
// mask in that case is zero.
func (mc *CPU) csrAtomic(ins instructions.Instruction, op func(uint32) uint32) {
	address := uint32(ins.Imm) & 0xfff
	old := mc.CSR.Read(address, mc.mip())
	mc.CSR.Write(address, op(old))
	mc.Regs.Write(ins.Rd, old)
}

func boolToReg(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// div performs RV32M signed division, truncating towards zero. Division by
// zero returns all ones; overflow (most negative value divided by minus
// one) returns the dividend.
func div(a, b uint32) uint32 {
	if b == 0 {
		return 0xffffffff
	}
	if a == 0x80000000 && b == 0xffffffff {
		return 0x80000000
	}
	return uint32(int32(a) / int32(b))
}

// rem performs RV32M signed remainder. The sign of the result follows the
// dividend. Division by zero returns the dividend; overflow returns zero.
func rem(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	if a == 0x80000000 && b == 0xffffffff {
		return 0
	}
	return uint32(int32(a) % int32(b))
}
