// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Flags holds the bit-mapped processor status register.
type Flags byte

// Bits assigned to the processor status byte
const (
	CarryBit            Flags = 1 << 0
	ZeroBit             Flags = 1 << 1
	InterruptDisableBit Flags = 1 << 2
	DecimalBit          Flags = 1 << 3
	BreakBit            Flags = 1 << 4
	ReservedBit         Flags = 1 << 5
	OverflowBit         Flags = 1 << 6
	SignBit             Flags = 1 << 7
)

// Has reports whether all bits in f are set.
func (ps Flags) Has(f Flags) bool {
	return ps&f == f
}

// Set sets or clears the bits in f.
func (ps *Flags) Set(f Flags, on bool) {
	if on {
		*ps |= f
	} else {
		*ps &^= f
	}
}

// stackBase is the address of the fixed stack page.
const stackBase = 0x0100

// Registers contains the state of all 6502 registers.
type Registers struct {
	A  byte   // accumulator
	X  byte   // X indexing register
	Y  byte   // Y indexing register
	PS Flags  // processor status
	SP byte   // stack pointer ($100 + SP = stack memory location)
	PC uint16 // program counter
}

// SavePS returns the processor status as it is pushed onto the stack. The
// reserved bit is always on; the break bit is set if requested.
func (r *Registers) SavePS(brk bool) byte {
	ps := (r.PS &^ BreakBit) | ReservedBit
	if brk {
		ps |= BreakBit
	}
	return byte(ps)
}

// RestorePS restores the processor status from a byte pulled off the
// stack. The break bit does not exist in the register itself.
func (r *Registers) RestorePS(ps byte) {
	r.PS = (Flags(ps) &^ BreakBit) | ReservedBit
}

// Init initializes all registers. A, X, Y = 0. SP = 0xff. PC = 0.
// PS = reserved bit only.
func (r *Registers) Init() {
	r.A = 0
	r.X = 0
	r.Y = 0
	r.SP = 0xff
	r.PC = 0
	r.PS = ReservedBit
}

// String returns the same text as CPU.Dump for these registers.
func (r *Registers) String() string {
	return dumpRegisters(r)
}

func boolToUint32(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

func boolToByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
