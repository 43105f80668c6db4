// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// FlatMemory represents an entire 16-bit address space as a singular
// 64K buffer. It implements Bus and never intercepts calls.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new 16-bit memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// Read loads a single byte from the address and returns it.
func (m *FlatMemory) Read(addr uint16) byte {
	return m.b[addr]
}

// Write stores a byte at the requested address.
func (m *FlatMemory) Write(addr uint16, v byte) {
	m.b[addr] = v
}

// Call never traps.
func (m *FlatMemory) Call(addr, source uint16) uint16 {
	return 0
}

// LoadBytes loads multiple bytes from the address into the buffer 'b'.
// Reads past $FFFF wrap around to $0000.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.b[addr]
		addr++
	}
}

// StoreBytes stores multiple bytes to the requested address. Writes past
// $FFFF wrap around to $0000.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	for _, v := range b {
		m.b[addr] = v
		addr++
	}
}

// Clear zeroes the entire address space.
func (m *FlatMemory) Clear() {
	m.b = [64 * 1024]byte{}
}

// Return the offset address 'addr' + 'offset'. If the offset
// crossed a page boundary, return 'pageCrossed' as true.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	pageCrossed = ((newAddr & 0xff00) != (addr & 0xff00))
	return newAddr, pageCrossed
}

// Offset a zero-page address 'addr' by 'offset'. If the address
// exceeds the zero-page address space, wrap it.
func offsetZeroPage(addr uint16, offset byte) uint16 {
	return uint16(byte(addr) + offset)
}

// Convert a 1- or 2-byte operand into an address.
func operandToAddress(operand []byte) uint16 {
	switch {
	case len(operand) == 1:
		return uint16(operand[0])
	case len(operand) == 2:
		return uint16(operand[0]) | uint16(operand[1])<<8
	}
	return 0
}

// Given a 1-byte stack pointer register, return the stack
// corresponding memory address.
func stackAddress(offset byte) uint16 {
	return stackBase + uint16(offset)
}
