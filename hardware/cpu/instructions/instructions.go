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

// Package instructions defines the decoded instruction representation
// produced by the assembler and consumed by the CPU.
//
// There is no bit-level encoding anywhere in the machine. The assembler
// emits Instruction values with immediates already sign extended and
// scaled, so execution is a plain switch on the Operation field with no
// field extraction.
package instructions

import (
	"fmt"
	"strings"

	"github.com/gopherrv/gopherrv/hardware/cpu/registers"
)

// Operation identifies the instruction to be performed.
type Operation int

// The list of supported operations.
const (
	// register-register
	Add Operation = iota
	Sub
	And
	Or
	Xor
	Sll
	Srl
	Sra
	Slt
	Sltu

	// M extension
	Mul
	Div
	Divu
	Rem
	Remu

	// register-immediate
	Addi
	Andi
	Ori
	Xori
	Slli
	Srli
	Srai
	Slti
	Sltiu

	// loads and stores
	Lw
	Lh
	Lhu
	Lb
	Lbu
	Sw
	Sh
	Sb

	// branches
	Beq
	Bne
	Blt
	Bge
	Bltu
	Bgeu

	// jumps
	Jal
	Jalr

	// upper immediate
	Lui
	Auipc

	// CSR access
	Csrrw
	Csrrs
	Csrrc
	Csrrwi
	Csrrsi
	Csrrci

	// system
	Mret
	Wfi
	Halt
)

// mnemonics indexed by Operation.
var mnemonics = []string{
	"add", "sub", "and", "or", "xor", "sll", "srl", "sra", "slt", "sltu",
	"mul", "div", "divu", "rem", "remu",
	"addi", "andi", "ori", "xori", "slli", "srli", "srai", "slti", "sltiu",
	"lw", "lh", "lhu", "lb", "lbu", "sw", "sh", "sb",
	"beq", "bne", "blt", "bge", "bltu", "bgeu",
	"jal", "jalr",
	"lui", "auipc",
	"csrrw", "csrrs", "csrrc", "csrrwi", "csrrsi", "csrrci",
	"mret", "wfi", "halt",
}

func (op Operation) String() string {
	if int(op) < 0 || int(op) >= len(mnemonics) {
		return "???"
	}
	return mnemonics[op]
}

// Instruction is a single decoded instruction. Only the fields required by
// the operation are meaningful.
//
// The Imm field holds the semantic value of the immediate: sign extended
// offsets for loads, stores and branches; the absolute value for ALU
// immediates; the unshifted 20bit value for Lui and Auipc; and the CSR
// address for the CSR operations (in which case the Rs1 field holds the
// source register or, for the immediate forms, the 5bit immediate).
type Instruction struct {
	Op  Operation
	Rd  uint32
	Rs1 uint32
	Rs2 uint32
	Imm int32
}

func regName(r uint32) string {
	return registers.Names[r&0x1f]
}

func (ins Instruction) String() string {
	s := strings.Builder{}
	s.WriteString(ins.Op.String())

	switch ins.Op {
	case Add, Sub, And, Or, Xor, Sll, Srl, Sra, Slt, Sltu,
		Mul, Div, Divu, Rem, Remu:
		s.WriteString(fmt.Sprintf(" %s, %s, %s", regName(ins.Rd), regName(ins.Rs1), regName(ins.Rs2)))

	case Addi, Andi, Ori, Xori, Slli, Srli, Srai, Slti, Sltiu:
		s.WriteString(fmt.Sprintf(" %s, %s, %d", regName(ins.Rd), regName(ins.Rs1), ins.Imm))

	case Lw, Lh, Lhu, Lb, Lbu:
		s.WriteString(fmt.Sprintf(" %s, %d(%s)", regName(ins.Rd), ins.Imm, regName(ins.Rs1)))

	case Sw, Sh, Sb:
		s.WriteString(fmt.Sprintf(" %s, %d(%s)", regName(ins.Rs2), ins.Imm, regName(ins.Rs1)))

	case Beq, Bne, Blt, Bge, Bltu, Bgeu:
		s.WriteString(fmt.Sprintf(" %s, %s, %d", regName(ins.Rs1), regName(ins.Rs2), ins.Imm))

	case Jal:
		s.WriteString(fmt.Sprintf(" %s, %d", regName(ins.Rd), ins.Imm))

	case Jalr:
		s.WriteString(fmt.Sprintf(" %s, %s, %d", regName(ins.Rd), regName(ins.Rs1), ins.Imm))

	case Lui, Auipc:
		s.WriteString(fmt.Sprintf(" %s, %#x", regName(ins.Rd), uint32(ins.Imm)))

	case Csrrw, Csrrs, Csrrc:
		s.WriteString(fmt.Sprintf(" %s, %#03x, %s", regName(ins.Rd), uint32(ins.Imm), regName(ins.Rs1)))

	case Csrrwi, Csrrsi, Csrrci:
		s.WriteString(fmt.Sprintf(" %s, %#03x, %d", regName(ins.Rd), uint32(ins.Imm), ins.Rs1))

	case Mret, Wfi, Halt:
		// no operands
	}

	return s.String()
}
