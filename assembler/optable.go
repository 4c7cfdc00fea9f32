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

import "github.com/gopherrv/gopherrv/hardware/cpu/instructions"

// operandClass describes the operand grammar of a mnemonic.
type operandClass int

const (
	classR      operandClass = iota // rd, rs1, rs2
	classI                          // rd, rs1, imm-or-label
	classShift                      // rd, rs1, shamt
	classLoad                       // rd, offset(rs1)
	classStore                      // rs2, offset(rs1)
	classBranch                     // rs1, rs2, target
	classJal                        // rd, target
	classJalr                       // rd, rs1, imm
	classUpper                      // rd, imm20
	classCsr                        // rd, csr, rs1
	classCsrImm                     // rd, csr, uimm
	classSystem                     // no operands
)

// entry in the mnemonic table.
type opDesc struct {
	op    instructions.Operation
	class operandClass
}

// the mnemonic table. pseudo instructions are not listed; they are
// expanded before the table is consulted.
var opTable = map[string]opDesc{
	"ADD":  {instructions.Add, classR},
	"SUB":  {instructions.Sub, classR},
	"AND":  {instructions.And, classR},
	"OR":   {instructions.Or, classR},
	"XOR":  {instructions.Xor, classR},
	"SLL":  {instructions.Sll, classR},
	"SRL":  {instructions.Srl, classR},
	"SRA":  {instructions.Sra, classR},
	"SLT":  {instructions.Slt, classR},
	"SLTU": {instructions.Sltu, classR},

	"MUL":  {instructions.Mul, classR},
	"DIV":  {instructions.Div, classR},
	"DIVU": {instructions.Divu, classR},
	"REM":  {instructions.Rem, classR},
	"REMU": {instructions.Remu, classR},

	"ADDI":  {instructions.Addi, classI},
	"ANDI":  {instructions.Andi, classI},
	"ORI":   {instructions.Ori, classI},
	"XORI":  {instructions.Xori, classI},
	"SLLI":  {instructions.Slli, classShift},
	"SRLI":  {instructions.Srli, classShift},
	"SRAI":  {instructions.Srai, classShift},
	"SLTI":  {instructions.Slti, classI},
	"SLTIU": {instructions.Sltiu, classI},

	"LW":  {instructions.Lw, classLoad},
	"LH":  {instructions.Lh, classLoad},
	"LHU": {instructions.Lhu, classLoad},
	"LB":  {instructions.Lb, classLoad},
	"LBU": {instructions.Lbu, classLoad},
	"SW":  {instructions.Sw, classStore},
	"SH":  {instructions.Sh, classStore},
	"SB":  {instructions.Sb, classStore},

	"BEQ":  {instructions.Beq, classBranch},
	"BNE":  {instructions.Bne, classBranch},
	"BLT":  {instructions.Blt, classBranch},
	"BGE":  {instructions.Bge, classBranch},
	"BLTU": {instructions.Bltu, classBranch},
	"BGEU": {instructions.Bgeu, classBranch},

	"JAL":  {instructions.Jal, classJal},
	"JALR": {instructions.Jalr, classJalr},

	"LUI":   {instructions.Lui, classUpper},
	"AUIPC": {instructions.Auipc, classUpper},

	"CSRRW":  {instructions.Csrrw, classCsr},
	"CSRRS":  {instructions.Csrrs, classCsr},
	"CSRRC":  {instructions.Csrrc, classCsr},
	"CSRRWI": {instructions.Csrrwi, classCsrImm},
	"CSRRSI": {instructions.Csrrsi, classCsrImm},
	"CSRRCI": {instructions.Csrrci, classCsrImm},

	"MRET": {instructions.Mret, classSystem},
	"WFI":  {instructions.Wfi, classSystem},
	"HALT": {instructions.Halt, classSystem},
}

// operand count for each class, for the wrong-operand-count error.
var operandCounts = map[operandClass]int{
	classR:      3,
	classI:      3,
	classShift:  3,
	classLoad:   2,
	classStore:  2,
	classBranch: 3,
	classJal:    2,
	classJalr:   3,
	classUpper:  2,
	classCsr:    3,
	classCsrImm: 3,
	classSystem: 0,
}
