// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Vector identifies one of the three hardware vectors. Its value is the
// address of the vector's low byte.
type Vector uint16

// Hardware vector addresses
const (
	VectorNMI   Vector = 0xfffa
	VectorReset Vector = 0xfffc
	VectorIRQ   Vector = 0xfffe
)

func (v Vector) String() string {
	switch v {
	case VectorNMI:
		return "NMI"
	case VectorReset:
		return "RESET"
	case VectorIRQ:
		return "IRQ"
	default:
		return "unknown"
	}
}

// Number of cycles consumed by hardware interrupt entry.
const interruptCycles = 7

// GetVector returns the address stored in a hardware vector. The vector is
// read through the CPU's read handler.
func (cpu *CPU) GetVector(v Vector) uint16 {
	return cpu.loadAddress(uint16(v))
}

// SetVector stores an address in a hardware vector through the CPU's write
// handler.
func (cpu *CPU) SetVector(v Vector, addr uint16) {
	cpu.write(uint16(v), byte(addr))
	cpu.write(uint16(v)+1, byte(addr>>8))
}

// Reset loads the program counter from the RESET vector and puts the
// status register into its power-on state. The stack pointer is left
// alone, and any partially executed instruction is abandoned.
func (cpu *CPU) Reset() {
	cpu.exec = execState{}
	cpu.Reg.PS = InterruptDisableBit | ReservedBit
	cpu.Reg.PC = cpu.GetVector(VectorReset)
}

// IRQ raises a maskable interrupt. The request is dropped if the
// interrupt-disable flag is set.
func (cpu *CPU) IRQ() {
	if cpu.flag(InterruptDisableBit) {
		return
	}
	cpu.interrupt(VectorIRQ)
}

// NMI raises a non-maskable interrupt.
func (cpu *CPU) NMI() {
	cpu.interrupt(VectorNMI)
}

// Take a hardware interrupt. Entry costs interruptCycles ticks, which are
// queued behind whatever the CPU is currently doing. A stack fault during
// entry is reported when those ticks have been drained.
func (cpu *CPU) interrupt(v Vector) {
	cpu.status = StatusOk
	cpu.enterInterrupt(false, cpu.GetVector(v))
	if cpu.exec.kind == execIdle {
		cpu.exec.kind = execInterrupt
	}
	if cpu.exec.fault == StatusOk {
		cpu.exec.fault = cpu.status
	}
	cpu.exec.remaining += interruptCycles
}

// Push the return frame and jump to an interrupt handler. The pushed
// status has the break flag set only for BRK.
func (cpu *CPU) enterInterrupt(brk bool, addr uint16) {
	cpu.pushAddress(cpu.Reg.PC)
	cpu.push(cpu.Reg.SavePS(brk))
	cpu.setFlag(InterruptDisableBit, true)
	if cpu.Arch == CMOS {
		cpu.setFlag(DecimalBit, false)
	}
	cpu.Reg.PC = addr
}
