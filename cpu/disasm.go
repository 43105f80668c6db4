// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "fmt"

// MaxDisassemblyLen is the longest line Disassemble produces.
const MaxDisassemblyLen = 64

// Disassembler formatting for addressing modes
var modeFormat = [...]string{
	IMM: "#$%s",
	IMP: "%s",
	REL: "$%s",
	ZPG: "$%s",
	ZPX: "$%s,X",
	ZPY: "$%s,Y",
	ABS: "$%s",
	ABX: "$%s,X",
	ABY: "$%s,Y",
	IND: "($%s)",
	IDX: "($%s,X)",
	IDY: "($%s),Y",
	ACC: "A",
	ZPI: "($%s)",
	IAX: "($%s,X)",
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the little-endian byte
// slice, most significant byte first.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble returns the text of the instruction at addr and the
// instruction's length in bytes. Memory is read through the CPU's read
// handler and nothing is modified.
func (cpu *CPU) Disassemble(addr uint16) (line string, length int) {
	return Disassemble(cpu.InstSet, cpu.read, addr)
}

// Disassemble decodes the instruction at addr using the instruction set
// and read function provided. Branch targets are shown as absolute
// addresses. An illegal opcode produces IllegalName and a length of 1.
func Disassemble(set *InstructionSet, read ReadFunc, addr uint16) (line string, length int) {
	inst := set.Lookup(read(addr))
	length = int(inst.Length)
	if inst.Illegal() {
		return IllegalName, 1
	}

	var buf [2]byte
	operand := buf[:length-1]
	for i := range operand {
		operand[i] = read(addr + 1 + uint16(i))
	}

	if inst.Mode == REL {
		// Convert relative offset to absolute address.
		braddr := addr + uint16(length) + uint16(int8(operand[0]))
		operand = []byte{byte(braddr), byte(braddr >> 8)}
	}

	switch inst.Mode {
	case IMP:
		line = inst.Name
	case ACC:
		line = inst.Name + " A"
	default:
		line = inst.Name + " " + fmt.Sprintf(modeFormat[inst.Mode], hexString(operand))
	}
	return line, length
}
