// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"strings"
	"sync"
)

type instfunc func(c *CPU, inst *Instruction, operand []byte)

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
	ACC             // Accumulator (no operand)
	ZPI             // (Zero Page) (65c02 only)
	IAX             // (Absolute,X) (65c02 only)
)

// Encoded instruction length for each addressing mode, including the
// opcode byte.
var modeLength = [...]byte{
	IMM: 2,
	IMP: 1,
	REL: 2,
	ZPG: 2,
	ZPX: 2,
	ZPY: 2,
	ABS: 3,
	ABX: 3,
	ABY: 3,
	IND: 3,
	IDX: 2,
	IDY: 2,
	ACC: 1,
	ZPI: 2,
	IAX: 3,
}

// Length returns the encoded size in bytes of an instruction using this
// addressing mode.
func (m Mode) Length() int {
	return int(modeLength[m])
}

// One opcode variant of an instruction.
type variant struct {
	opcode   byte
	mode     Mode
	cycles   byte // base CPU cycles
	bpcycles byte // additional cycles if a page boundary is crossed
	cmos     bool // variant exists only on the 65c02
}

// Emulator implementation and opcode variants of one instruction.
type opcodeImpl struct {
	name     string
	fn       [2]instfunc // NMOS=0, CMOS=1
	variants []variant
}

// both returns the same implementation for both architectures.
func both(fn instfunc) [2]instfunc {
	return [2]instfunc{fn, fn}
}

// cmosOnly returns an implementation that exists only on the 65c02.
func cmosOnly(fn instfunc) [2]instfunc {
	return [2]instfunc{nil, fn}
}

var impl = []opcodeImpl{
	{"ADC", [2]instfunc{(*CPU).adcn, (*CPU).adcc}, []variant{
		{0x69, IMM, 2, 0, false}, {0x65, ZPG, 3, 0, false},
		{0x75, ZPX, 4, 0, false}, {0x6d, ABS, 4, 0, false},
		{0x7d, ABX, 4, 1, false}, {0x79, ABY, 4, 1, false},
		{0x61, IDX, 6, 0, false}, {0x71, IDY, 5, 1, false},
		{0x72, ZPI, 5, 0, true},
	}},
	{"AND", both((*CPU).and), []variant{
		{0x29, IMM, 2, 0, false}, {0x25, ZPG, 3, 0, false},
		{0x35, ZPX, 4, 0, false}, {0x2d, ABS, 4, 0, false},
		{0x3d, ABX, 4, 1, false}, {0x39, ABY, 4, 1, false},
		{0x21, IDX, 6, 0, false}, {0x31, IDY, 5, 1, false},
		{0x32, ZPI, 5, 0, true},
	}},
	{"ASL", both((*CPU).asl), []variant{
		{0x0a, ACC, 2, 0, false}, {0x06, ZPG, 5, 0, false},
		{0x16, ZPX, 6, 0, false}, {0x0e, ABS, 6, 0, false},
		{0x1e, ABX, 7, 0, false},
	}},
	{"BCC", both((*CPU).bcc), []variant{{0x90, REL, 2, 1, false}}},
	{"BCS", both((*CPU).bcs), []variant{{0xb0, REL, 2, 1, false}}},
	{"BEQ", both((*CPU).beq), []variant{{0xf0, REL, 2, 1, false}}},
	{"BIT", both((*CPU).bit), []variant{
		{0x24, ZPG, 3, 0, false}, {0x2c, ABS, 4, 0, false},
		{0x89, IMM, 2, 0, true}, {0x34, ZPX, 4, 0, true},
		{0x3c, ABX, 4, 1, true},
	}},
	{"BMI", both((*CPU).bmi), []variant{{0x30, REL, 2, 1, false}}},
	{"BNE", both((*CPU).bne), []variant{{0xd0, REL, 2, 1, false}}},
	{"BPL", both((*CPU).bpl), []variant{{0x10, REL, 2, 1, false}}},
	{"BRA", cmosOnly((*CPU).bra), []variant{{0x80, REL, 2, 1, true}}},
	{"BRK", both((*CPU).brk), []variant{{0x00, IMP, 7, 0, false}}},
	{"BVC", both((*CPU).bvc), []variant{{0x50, REL, 2, 1, false}}},
	{"BVS", both((*CPU).bvs), []variant{{0x70, REL, 2, 1, false}}},
	{"CLC", both((*CPU).clc), []variant{{0x18, IMP, 2, 0, false}}},
	{"CLD", both((*CPU).cld), []variant{{0xd8, IMP, 2, 0, false}}},
	{"CLI", both((*CPU).cli), []variant{{0x58, IMP, 2, 0, false}}},
	{"CLV", both((*CPU).clv), []variant{{0xb8, IMP, 2, 0, false}}},
	{"CMP", both((*CPU).cmp), []variant{
		{0xc9, IMM, 2, 0, false}, {0xc5, ZPG, 3, 0, false},
		{0xd5, ZPX, 4, 0, false}, {0xcd, ABS, 4, 0, false},
		{0xdd, ABX, 4, 1, false}, {0xd9, ABY, 4, 1, false},
		{0xc1, IDX, 6, 0, false}, {0xd1, IDY, 5, 1, false},
		{0xd2, ZPI, 5, 0, true},
	}},
	{"CPX", both((*CPU).cpx), []variant{
		{0xe0, IMM, 2, 0, false}, {0xe4, ZPG, 3, 0, false},
		{0xec, ABS, 4, 0, false},
	}},
	{"CPY", both((*CPU).cpy), []variant{
		{0xc0, IMM, 2, 0, false}, {0xc4, ZPG, 3, 0, false},
		{0xcc, ABS, 4, 0, false},
	}},
	{"DEC", both((*CPU).dec), []variant{
		{0xc6, ZPG, 5, 0, false}, {0xd6, ZPX, 6, 0, false},
		{0xce, ABS, 6, 0, false}, {0xde, ABX, 7, 0, false},
		{0x3a, ACC, 2, 0, true},
	}},
	{"DEX", both((*CPU).dex), []variant{{0xca, IMP, 2, 0, false}}},
	{"DEY", both((*CPU).dey), []variant{{0x88, IMP, 2, 0, false}}},
	{"EOR", both((*CPU).eor), []variant{
		{0x49, IMM, 2, 0, false}, {0x45, ZPG, 3, 0, false},
		{0x55, ZPX, 4, 0, false}, {0x4d, ABS, 4, 0, false},
		{0x5d, ABX, 4, 1, false}, {0x59, ABY, 4, 1, false},
		{0x41, IDX, 6, 0, false}, {0x51, IDY, 5, 1, false},
		{0x52, ZPI, 5, 0, true},
	}},
	{"INC", both((*CPU).inc), []variant{
		{0xe6, ZPG, 5, 0, false}, {0xf6, ZPX, 6, 0, false},
		{0xee, ABS, 6, 0, false}, {0xfe, ABX, 7, 0, false},
		{0x1a, ACC, 2, 0, true},
	}},
	{"INX", both((*CPU).inx), []variant{{0xe8, IMP, 2, 0, false}}},
	{"INY", both((*CPU).iny), []variant{{0xc8, IMP, 2, 0, false}}},
	{"JMP", [2]instfunc{(*CPU).jmpn, (*CPU).jmpc}, []variant{
		{0x4c, ABS, 3, 0, false}, {0x6c, IND, 5, 0, false},
		{0x7c, IAX, 6, 0, true},
	}},
	{"JSR", both((*CPU).jsr), []variant{{0x20, ABS, 6, 0, false}}},
	{"LDA", both((*CPU).lda), []variant{
		{0xa9, IMM, 2, 0, false}, {0xa5, ZPG, 3, 0, false},
		{0xb5, ZPX, 4, 0, false}, {0xad, ABS, 4, 0, false},
		{0xbd, ABX, 4, 1, false}, {0xb9, ABY, 4, 1, false},
		{0xa1, IDX, 6, 0, false}, {0xb1, IDY, 5, 1, false},
		{0xb2, ZPI, 5, 0, true},
	}},
	{"LDX", both((*CPU).ldx), []variant{
		{0xa2, IMM, 2, 0, false}, {0xa6, ZPG, 3, 0, false},
		{0xb6, ZPY, 4, 0, false}, {0xae, ABS, 4, 0, false},
		{0xbe, ABY, 4, 1, false},
	}},
	{"LDY", both((*CPU).ldy), []variant{
		{0xa0, IMM, 2, 0, false}, {0xa4, ZPG, 3, 0, false},
		{0xb4, ZPX, 4, 0, false}, {0xac, ABS, 4, 0, false},
		{0xbc, ABX, 4, 1, false},
	}},
	{"LSR", both((*CPU).lsr), []variant{
		{0x4a, ACC, 2, 0, false}, {0x46, ZPG, 5, 0, false},
		{0x56, ZPX, 6, 0, false}, {0x4e, ABS, 6, 0, false},
		{0x5e, ABX, 7, 0, false},
	}},
	{"NOP", both((*CPU).nop), []variant{{0xea, IMP, 2, 0, false}}},
	{"ORA", both((*CPU).ora), []variant{
		{0x09, IMM, 2, 0, false}, {0x05, ZPG, 3, 0, false},
		{0x15, ZPX, 4, 0, false}, {0x0d, ABS, 4, 0, false},
		{0x1d, ABX, 4, 1, false}, {0x19, ABY, 4, 1, false},
		{0x01, IDX, 6, 0, false}, {0x11, IDY, 5, 1, false},
		{0x12, ZPI, 5, 0, true},
	}},
	{"PHA", both((*CPU).pha), []variant{{0x48, IMP, 3, 0, false}}},
	{"PHP", both((*CPU).php), []variant{{0x08, IMP, 3, 0, false}}},
	{"PHX", cmosOnly((*CPU).phx), []variant{{0xda, IMP, 3, 0, true}}},
	{"PHY", cmosOnly((*CPU).phy), []variant{{0x5a, IMP, 3, 0, true}}},
	{"PLA", both((*CPU).pla), []variant{{0x68, IMP, 4, 0, false}}},
	{"PLP", both((*CPU).plp), []variant{{0x28, IMP, 4, 0, false}}},
	{"PLX", cmosOnly((*CPU).plx), []variant{{0xfa, IMP, 4, 0, true}}},
	{"PLY", cmosOnly((*CPU).ply), []variant{{0x7a, IMP, 4, 0, true}}},
	{"ROL", both((*CPU).rol), []variant{
		{0x2a, ACC, 2, 0, false}, {0x26, ZPG, 5, 0, false},
		{0x36, ZPX, 6, 0, false}, {0x2e, ABS, 6, 0, false},
		{0x3e, ABX, 7, 0, false},
	}},
	{"ROR", both((*CPU).ror), []variant{
		{0x6a, ACC, 2, 0, false}, {0x66, ZPG, 5, 0, false},
		{0x76, ZPX, 6, 0, false}, {0x6e, ABS, 6, 0, false},
		{0x7e, ABX, 7, 0, false},
	}},
	{"RTI", both((*CPU).rti), []variant{{0x40, IMP, 6, 0, false}}},
	{"RTS", both((*CPU).rts), []variant{{0x60, IMP, 6, 0, false}}},
	{"SBC", [2]instfunc{(*CPU).sbcn, (*CPU).sbcc}, []variant{
		{0xe9, IMM, 2, 0, false}, {0xe5, ZPG, 3, 0, false},
		{0xf5, ZPX, 4, 0, false}, {0xed, ABS, 4, 0, false},
		{0xfd, ABX, 4, 1, false}, {0xf9, ABY, 4, 1, false},
		{0xe1, IDX, 6, 0, false}, {0xf1, IDY, 5, 1, false},
		{0xf2, ZPI, 5, 0, true},
	}},
	{"SEC", both((*CPU).sec), []variant{{0x38, IMP, 2, 0, false}}},
	{"SED", both((*CPU).sed), []variant{{0xf8, IMP, 2, 0, false}}},
	{"SEI", both((*CPU).sei), []variant{{0x78, IMP, 2, 0, false}}},
	{"STA", both((*CPU).sta), []variant{
		{0x85, ZPG, 3, 0, false}, {0x95, ZPX, 4, 0, false},
		{0x8d, ABS, 4, 0, false}, {0x9d, ABX, 5, 0, false},
		{0x99, ABY, 5, 0, false}, {0x81, IDX, 6, 0, false},
		{0x91, IDY, 6, 0, false}, {0x92, ZPI, 5, 0, true},
	}},
	{"STX", both((*CPU).stx), []variant{
		{0x86, ZPG, 3, 0, false}, {0x96, ZPY, 4, 0, false},
		{0x8e, ABS, 4, 0, false},
	}},
	{"STY", both((*CPU).sty), []variant{
		{0x84, ZPG, 3, 0, false}, {0x94, ZPX, 4, 0, false},
		{0x8c, ABS, 4, 0, false},
	}},
	{"STZ", cmosOnly((*CPU).stz), []variant{
		{0x64, ZPG, 3, 0, true}, {0x74, ZPX, 4, 0, true},
		{0x9c, ABS, 4, 0, true}, {0x9e, ABX, 5, 0, true},
	}},
	{"TAX", both((*CPU).tax), []variant{{0xaa, IMP, 2, 0, false}}},
	{"TAY", both((*CPU).tay), []variant{{0xa8, IMP, 2, 0, false}}},
	{"TRB", cmosOnly((*CPU).trb), []variant{
		{0x14, ZPG, 5, 0, true}, {0x1c, ABS, 6, 0, true},
	}},
	{"TSB", cmosOnly((*CPU).tsb), []variant{
		{0x04, ZPG, 5, 0, true}, {0x0c, ABS, 6, 0, true},
	}},
	{"TSX", both((*CPU).tsx), []variant{{0xba, IMP, 2, 0, false}}},
	{"TXA", both((*CPU).txa), []variant{{0x8a, IMP, 2, 0, false}}},
	{"TXS", both((*CPU).txs), []variant{{0x9a, IMP, 2, 0, false}}},
	{"TYA", both((*CPU).tya), []variant{{0x98, IMP, 2, 0, false}}},
}

// Opcodes the 65c02 leaves unassigned. They execute as no-operations of
// fixed length and duration.
var cmosNOPs = []variant{
	{0x02, IMM, 2, 0, true}, {0x22, IMM, 2, 0, true},
	{0x42, IMM, 2, 0, true}, {0x62, IMM, 2, 0, true},
	{0x82, IMM, 2, 0, true}, {0xc2, IMM, 2, 0, true},
	{0xe2, IMM, 2, 0, true}, {0x44, ZPG, 3, 0, true},
	{0x54, ZPX, 4, 0, true}, {0xd4, ZPX, 4, 0, true},
	{0xf4, ZPX, 4, 0, true}, {0x5c, ABS, 8, 0, true},
	{0xdc, ABS, 4, 0, true}, {0xfc, ABS, 4, 0, true},
}

// IllegalName is the mnemonic reported for opcodes with no defined
// behavior.
const IllegalName = "???"

// An Instruction describes a CPU instruction, including its name,
// its addressing mode, its opcode value, its operand size, and its CPU cycle
// cost.
type Instruction struct {
	Name     string   // all-caps name of the instruction
	Mode     Mode     // addressing mode
	Opcode   byte     // hexadecimal opcode value
	Length   byte     // combined size of opcode and operand, in bytes
	Cycles   byte     // number of CPU cycles to execute the instruction
	BPCycles byte     // additional cycles required if boundary page crossed
	fn       instfunc // emulator implementation of the function
}

// Illegal returns true if the opcode has no defined behavior on the
// instruction set's architecture.
func (inst *Instruction) Illegal() bool {
	return inst.fn == nil
}

// An InstructionSet defines the set of all possible instructions that
// can run on the emulated CPU.
type InstructionSet struct {
	Arch         Architecture
	instructions [256]Instruction          // all instructions by opcode
	variants     map[string][]*Instruction // variants of each instruction
}

// Lookup retrieves a CPU instruction corresponding to the requested opcode.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Create an instruction set for a CPU architecture.
func newInstructionSet(arch Architecture) *InstructionSet {
	set := &InstructionSet{
		Arch:     arch,
		variants: make(map[string][]*Instruction),
	}

	// Every opcode starts out illegal: one byte long, one cycle to fetch.
	for i := range set.instructions {
		set.instructions[i] = Instruction{
			Name:   IllegalName,
			Mode:   IMP,
			Opcode: byte(i),
			Length: 1,
			Cycles: 1,
		}
	}

	add := func(name string, fn instfunc, v variant) {
		inst := &set.instructions[v.opcode]
		inst.Name = name
		inst.Mode = v.mode
		inst.Length = modeLength[v.mode]
		inst.Cycles = v.cycles
		inst.BPCycles = v.bpcycles
		inst.fn = fn
		set.variants[name] = append(set.variants[name], inst)
	}

	for _, im := range impl {
		fn := im.fn[arch]
		if fn == nil {
			continue
		}
		for _, v := range im.variants {
			if v.cmos && arch != CMOS {
				continue
			}
			add(im.name, fn, v)
		}
	}

	if arch == CMOS {
		for _, v := range cmosNOPs {
			add("NOP", (*CPU).nop, v)
		}
		// The remaining 65c02 holes are single-byte, single-cycle NOPs.
		for i := range set.instructions {
			if set.instructions[i].fn == nil {
				add("NOP", (*CPU).nop, variant{byte(i), IMP, 1, 0, true})
			}
		}
	}

	return set
}

var (
	instructionSets  [2]*InstructionSet
	instructionOnces [2]sync.Once
)

// GetInstructionSet returns the instruction set for the requested CPU
// architecture. Each set is built once and shared read-only.
func GetInstructionSet(arch Architecture) *InstructionSet {
	instructionOnces[arch].Do(func() {
		instructionSets[arch] = newInstructionSet(arch)
	})
	return instructionSets[arch]
}
