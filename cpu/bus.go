// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The Bus interface presents the host system to the CPU. All memory and I/O
// accesses occur through it, and it may intercept subroutine calls.
type Bus interface {
	// Read returns the byte at the address. It must accept every 16-bit
	// address.
	Read(addr uint16) byte

	// Write stores a byte at the address. It must accept every 16-bit
	// address.
	Write(addr uint16, v byte)

	// Call is invoked when control is about to transfer to addr by a
	// subroutine call (or a BRK through a zero IRQ vector). Source is the
	// address of the instruction making the transfer. A non-zero return
	// value is the address of the next instruction to execute, and the
	// transfer is absorbed: nothing is pushed onto the stack. A zero
	// return value lets the CPU perform the transfer normally.
	Call(addr, source uint16) uint16
}

// ReadFunc is the type of the CPU's read handler slot.
type ReadFunc func(addr uint16) byte

// WriteFunc is the type of the CPU's write handler slot.
type WriteFunc func(addr uint16, v byte)

// CallFunc is the type of the CPU's call handler slot.
type CallFunc func(addr, source uint16) uint16

func noCall(addr, source uint16) uint16 {
	return 0
}

// ReadHandler returns the function currently used for bus reads.
func (cpu *CPU) ReadHandler() ReadFunc {
	return cpu.read
}

// SetReadHandler replaces the function used for bus reads. Passing nil
// restores the bus's own Read method.
func (cpu *CPU) SetReadHandler(fn ReadFunc) {
	if fn == nil {
		fn = cpu.bus.Read
	}
	cpu.read = fn
}

// WriteHandler returns the function currently used for bus writes.
func (cpu *CPU) WriteHandler() WriteFunc {
	return cpu.write
}

// SetWriteHandler replaces the function used for bus writes. Passing nil
// restores the bus's own Write method.
func (cpu *CPU) SetWriteHandler(fn WriteFunc) {
	if fn == nil {
		fn = cpu.bus.Write
	}
	cpu.write = fn
}

// CallHandler returns the function currently used to intercept calls.
func (cpu *CPU) CallHandler() CallFunc {
	return cpu.call
}

// SetCallHandler replaces the call interception function. Passing nil
// removes all interception: every call is performed normally.
func (cpu *CPU) SetCallHandler(fn CallFunc) {
	if fn == nil {
		fn = noCall
	}
	cpu.call = fn
}

// Bus returns the bus the CPU was created with.
func (cpu *CPU) Bus() Bus {
	return cpu.bus
}
