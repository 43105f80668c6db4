// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Add with carry (CMOS)
func (cpu *CPU) adcc(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	add := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.flag(CarryBit))
	var v uint32

	overflow := ((acc ^ add) & 0x80) == 0

	if cpu.flag(DecimalBit) {
		cpu.deltaCycles++

		lo := (acc & 0x0f) + (add & 0x0f) + carry

		var carrylo uint32
		if lo >= 0x0a {
			carrylo = 0x10
			lo -= 0xa
		}

		hi := (acc & 0xf0) + (add & 0xf0) + carrylo

		if hi >= 0xa0 {
			cpu.setFlag(CarryBit, true)
			if hi >= 0x180 {
				overflow = false
			}
			hi -= 0xa0
		} else {
			cpu.setFlag(CarryBit, false)
			if hi < 0x80 {
				overflow = false
			}
		}

		v = hi | lo
	} else {
		v = acc + add + carry
		if v >= 0x100 {
			cpu.setFlag(CarryBit, true)
			if v >= 0x180 {
				overflow = false
			}
		} else {
			cpu.setFlag(CarryBit, false)
			if v < 0x80 {
				overflow = false
			}
		}
	}

	cpu.setFlag(OverflowBit, overflow)
	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Add with carry (NMOS)
func (cpu *CPU) adcn(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	add := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.flag(CarryBit))
	var v uint32

	if cpu.flag(DecimalBit) {
		lo := (acc & 0x0f) + (add & 0x0f) + carry

		var carrylo uint32
		if lo >= 0x0a {
			carrylo = 0x10
			lo -= 0x0a
		}

		hi := (acc & 0xf0) + (add & 0xf0) + carrylo

		if hi >= 0xa0 {
			cpu.setFlag(CarryBit, true)
			hi -= 0xa0
		} else {
			cpu.setFlag(CarryBit, false)
		}

		v = hi | lo
		cpu.setFlag(OverflowBit, ((acc^v)&0x80) != 0 && ((acc^add)&0x80) == 0)
	} else {
		v = acc + add + carry
		cpu.setFlag(CarryBit, v >= 0x100)
		cpu.setFlag(OverflowBit, ((acc^add)&0x80) == 0 && ((acc^v)&0x80) != 0)
	}

	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Subtract with Carry (CMOS)
func (cpu *CPU) sbcc(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	sub := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.flag(CarryBit))
	overflow := ((acc ^ sub) & 0x80) != 0
	var v uint32

	if cpu.flag(DecimalBit) {
		cpu.deltaCycles++

		lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry

		var carrylo uint32
		if lo < 0x10 {
			lo -= 0x06
			carrylo = 0
		} else {
			lo -= 0x10
			carrylo = 0x10
		}

		hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo

		if hi < 0x100 {
			cpu.setFlag(CarryBit, false)
			if hi < 0x80 {
				overflow = false
			}
			hi -= 0x60
		} else {
			cpu.setFlag(CarryBit, true)
			if hi >= 0x180 {
				overflow = false
			}
			hi -= 0x100
		}

		v = hi | lo
	} else {
		v = 0xff + acc - sub + carry
		if v < 0x100 {
			cpu.setFlag(CarryBit, false)
			if v < 0x80 {
				overflow = false
			}
		} else {
			cpu.setFlag(CarryBit, true)
			if v >= 0x180 {
				overflow = false
			}
		}
	}

	cpu.setFlag(OverflowBit, overflow)
	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Subtract with Carry (NMOS)
func (cpu *CPU) sbcn(inst *Instruction, operand []byte) {
	acc := uint32(cpu.Reg.A)
	sub := uint32(cpu.load(inst.Mode, operand))
	carry := boolToUint32(cpu.flag(CarryBit))
	var v uint32

	if cpu.flag(DecimalBit) {
		lo := 0x0f + (acc & 0x0f) - (sub & 0x0f) + carry

		var carrylo uint32
		if lo < 0x10 {
			lo -= 0x06
			carrylo = 0
		} else {
			lo -= 0x10
			carrylo = 0x10
		}

		hi := 0xf0 + (acc & 0xf0) - (sub & 0xf0) + carrylo

		if hi < 0x100 {
			cpu.setFlag(CarryBit, false)
			hi -= 0x60
		} else {
			cpu.setFlag(CarryBit, true)
			hi -= 0x100
		}

		v = hi | lo
		cpu.setFlag(OverflowBit, ((acc^v)&0x80) != 0 && ((acc^sub)&0x80) != 0)
	} else {
		v = 0xff + acc - sub + carry
		cpu.setFlag(CarryBit, v >= 0x100)
		cpu.setFlag(OverflowBit, ((acc^sub)&0x80) != 0 && ((acc^v)&0x80) != 0)
	}

	cpu.Reg.A = byte(v)
	cpu.updateNZ(cpu.Reg.A)
}

// Boolean AND
func (cpu *CPU) and(inst *Instruction, operand []byte) {
	cpu.Reg.A &= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Boolean OR
func (cpu *CPU) ora(inst *Instruction, operand []byte) {
	cpu.Reg.A |= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Boolean XOR
func (cpu *CPU) eor(inst *Instruction, operand []byte) {
	cpu.Reg.A ^= cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// Read-modify-write helper shared by the shift and rotate instructions.
func (cpu *CPU) modify(inst *Instruction, operand []byte, fn func(v byte) byte) {
	v := fn(cpu.load(inst.Mode, operand))
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
	if cpu.Arch == CMOS && inst.Mode == ABX && !cpu.pageCrossed {
		cpu.deltaCycles--
	}
}

// Arithmetic Shift Left
func (cpu *CPU) asl(inst *Instruction, operand []byte) {
	cpu.modify(inst, operand, func(v byte) byte {
		cpu.setFlag(CarryBit, (v&0x80) != 0)
		return v << 1
	})
}

// Logical Shift Right
func (cpu *CPU) lsr(inst *Instruction, operand []byte) {
	cpu.modify(inst, operand, func(v byte) byte {
		cpu.setFlag(CarryBit, (v&1) != 0)
		return v >> 1
	})
}

// Rotate Left
func (cpu *CPU) rol(inst *Instruction, operand []byte) {
	cpu.modify(inst, operand, func(v byte) byte {
		c := boolToByte(cpu.flag(CarryBit))
		cpu.setFlag(CarryBit, (v&0x80) != 0)
		return (v << 1) | c
	})
}

// Rotate Right
func (cpu *CPU) ror(inst *Instruction, operand []byte) {
	cpu.modify(inst, operand, func(v byte) byte {
		c := boolToByte(cpu.flag(CarryBit))
		cpu.setFlag(CarryBit, (v&1) != 0)
		return (v >> 1) | (c << 7)
	})
}

// Branch if Carry Clear
func (cpu *CPU) bcc(inst *Instruction, operand []byte) {
	if !cpu.flag(CarryBit) {
		cpu.branch(operand)
	}
}

// Branch if Carry Set
func (cpu *CPU) bcs(inst *Instruction, operand []byte) {
	if cpu.flag(CarryBit) {
		cpu.branch(operand)
	}
}

// Branch if EQual (to zero)
func (cpu *CPU) beq(inst *Instruction, operand []byte) {
	if cpu.flag(ZeroBit) {
		cpu.branch(operand)
	}
}

// Branch if Not Equal (not zero)
func (cpu *CPU) bne(inst *Instruction, operand []byte) {
	if !cpu.flag(ZeroBit) {
		cpu.branch(operand)
	}
}

// Branch if MInus (negative)
func (cpu *CPU) bmi(inst *Instruction, operand []byte) {
	if cpu.flag(SignBit) {
		cpu.branch(operand)
	}
}

// Branch if PLus (positive)
func (cpu *CPU) bpl(inst *Instruction, operand []byte) {
	if !cpu.flag(SignBit) {
		cpu.branch(operand)
	}
}

// Branch if oVerflow Clear
func (cpu *CPU) bvc(inst *Instruction, operand []byte) {
	if !cpu.flag(OverflowBit) {
		cpu.branch(operand)
	}
}

// Branch if oVerflow Set
func (cpu *CPU) bvs(inst *Instruction, operand []byte) {
	if cpu.flag(OverflowBit) {
		cpu.branch(operand)
	}
}

// Branch always (65c02 only)
func (cpu *CPU) bra(inst *Instruction, operand []byte) {
	cpu.branch(operand)
}

// Bit Test
func (cpu *CPU) bit(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.setFlag(ZeroBit, (v&cpu.Reg.A) == 0)

	// The immediate form only affects the zero flag.
	if inst.Mode != IMM {
		cpu.setFlag(SignBit, (v&0x80) != 0)
		cpu.setFlag(OverflowBit, (v&0x40) != 0)
	}
}

// Break. A zero IRQ vector hands the break to the call handler.
func (cpu *CPU) brk(inst *Instruction, operand []byte) {
	vector := cpu.GetVector(VectorIRQ)
	if vector == 0 {
		if next := cpu.call(0, cpu.LastPC); next != 0 {
			cpu.Reg.PC = next
		} else {
			cpu.status = StatusIllegal
		}
		return
	}

	// BRK skips the padding byte that follows it.
	cpu.Reg.PC++
	cpu.enterInterrupt(true, vector)
}

// Clear Carry flag
func (cpu *CPU) clc(inst *Instruction, operand []byte) {
	cpu.setFlag(CarryBit, false)
}

// Clear Decimal flag
func (cpu *CPU) cld(inst *Instruction, operand []byte) {
	cpu.setFlag(DecimalBit, false)
}

// Clear InterruptDisable flag
func (cpu *CPU) cli(inst *Instruction, operand []byte) {
	cpu.setFlag(InterruptDisableBit, false)
}

// Clear oVerflow flag
func (cpu *CPU) clv(inst *Instruction, operand []byte) {
	cpu.setFlag(OverflowBit, false)
}

// Set Carry flag
func (cpu *CPU) sec(inst *Instruction, operand []byte) {
	cpu.setFlag(CarryBit, true)
}

// Set Decimal flag
func (cpu *CPU) sed(inst *Instruction, operand []byte) {
	cpu.setFlag(DecimalBit, true)
}

// Set InterruptDisable flag
func (cpu *CPU) sei(inst *Instruction, operand []byte) {
	cpu.setFlag(InterruptDisableBit, true)
}

func (cpu *CPU) compare(reg byte, inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.setFlag(CarryBit, reg >= v)
	cpu.updateNZ(reg - v)
}

// Compare to accumulator
func (cpu *CPU) cmp(inst *Instruction, operand []byte) {
	cpu.compare(cpu.Reg.A, inst, operand)
}

// Compare to X register
func (cpu *CPU) cpx(inst *Instruction, operand []byte) {
	cpu.compare(cpu.Reg.X, inst, operand)
}

// Compare to Y register
func (cpu *CPU) cpy(inst *Instruction, operand []byte) {
	cpu.compare(cpu.Reg.Y, inst, operand)
}

// Decrement memory value
func (cpu *CPU) dec(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) - 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Increment memory value
func (cpu *CPU) inc(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) + 1
	cpu.updateNZ(v)
	cpu.store(inst.Mode, operand, v)
}

// Decrement X register
func (cpu *CPU) dex(inst *Instruction, operand []byte) {
	cpu.Reg.X--
	cpu.updateNZ(cpu.Reg.X)
}

// Decrement Y register
func (cpu *CPU) dey(inst *Instruction, operand []byte) {
	cpu.Reg.Y--
	cpu.updateNZ(cpu.Reg.Y)
}

// Increment X register
func (cpu *CPU) inx(inst *Instruction, operand []byte) {
	cpu.Reg.X++
	cpu.updateNZ(cpu.Reg.X)
}

// Increment Y register
func (cpu *CPU) iny(inst *Instruction, operand []byte) {
	cpu.Reg.Y++
	cpu.updateNZ(cpu.Reg.Y)
}

// Jump to memory address (NMOS 6502)
func (cpu *CPU) jmpn(inst *Instruction, operand []byte) {
	addr := operandToAddress(operand)
	if inst.Mode == IND {
		addr = cpu.loadAddressPageWrapped(addr)
	}
	cpu.Reg.PC = addr
}

// Jump to memory address (CMOS 65c02)
func (cpu *CPU) jmpc(inst *Instruction, operand []byte) {
	addr := operandToAddress(operand)
	switch inst.Mode {
	case IND:
		// The 65c02 carries into the high byte when the pointer ends in $FF.
		addr = cpu.loadAddress(addr)
		cpu.deltaCycles++
	case IAX:
		addr = cpu.loadAddress(addr + uint16(cpu.Reg.X))
	}
	cpu.Reg.PC = addr
}

// Jump to subroutine. The call handler may absorb the call entirely.
func (cpu *CPU) jsr(inst *Instruction, operand []byte) {
	addr := operandToAddress(operand)
	if next := cpu.call(addr, cpu.LastPC); next != 0 {
		cpu.Reg.PC = next
		return
	}
	cpu.pushAddress(cpu.Reg.PC - 1)
	cpu.Reg.PC = addr
}

// load Accumulator
func (cpu *CPU) lda(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.A)
}

// load the X register
func (cpu *CPU) ldx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.X)
}

// load the Y register
func (cpu *CPU) ldy(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.load(inst.Mode, operand)
	cpu.updateNZ(cpu.Reg.Y)
}

// No-operation. Operands of the 65c02's multi-byte NOPs are still read.
func (cpu *CPU) nop(inst *Instruction, operand []byte) {
	switch inst.Mode {
	case ZPG, ZPX, ABS:
		cpu.load(inst.Mode, operand)
	}
}

// Push Accumulator
func (cpu *CPU) pha(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.A)
}

// Push Processor flags
func (cpu *CPU) php(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.SavePS(true))
}

// Push X register (65c02 only)
func (cpu *CPU) phx(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.X)
}

// Push Y register (65c02 only)
func (cpu *CPU) phy(inst *Instruction, operand []byte) {
	cpu.push(cpu.Reg.Y)
}

// Pull (pop) Accumulator
func (cpu *CPU) pla(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.pop()
	cpu.updateNZ(cpu.Reg.A)
}

// Pull (pop) Processor flags
func (cpu *CPU) plp(inst *Instruction, operand []byte) {
	cpu.Reg.RestorePS(cpu.pop())
}

// Pull (pop) X register (65c02 only)
func (cpu *CPU) plx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.pop()
	cpu.updateNZ(cpu.Reg.X)
}

// Pull (pop) Y register (65c02 only)
func (cpu *CPU) ply(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.pop()
	cpu.updateNZ(cpu.Reg.Y)
}

// Return from Interrupt
func (cpu *CPU) rti(inst *Instruction, operand []byte) {
	cpu.Reg.RestorePS(cpu.pop())
	cpu.Reg.PC = cpu.popAddress()
}

// Return from Subroutine
func (cpu *CPU) rts(inst *Instruction, operand []byte) {
	cpu.Reg.PC = cpu.popAddress() + 1
}

// Store Accumulator
func (cpu *CPU) sta(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.A)
}

// Store X register
func (cpu *CPU) stx(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.X)
}

// Store Y register
func (cpu *CPU) sty(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.Y)
}

// Store Zero (65c02 only)
func (cpu *CPU) stz(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, 0)
}

// Transfer Accumulator to X register
func (cpu *CPU) tax(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer Accumulator to Y register
func (cpu *CPU) tay(inst *Instruction, operand []byte) {
	cpu.Reg.Y = cpu.Reg.A
	cpu.updateNZ(cpu.Reg.Y)
}

// Transfer stack pointer to X register
func (cpu *CPU) tsx(inst *Instruction, operand []byte) {
	cpu.Reg.X = cpu.Reg.SP
	cpu.updateNZ(cpu.Reg.X)
}

// Transfer X register to Accumulator
func (cpu *CPU) txa(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.Reg.X
	cpu.updateNZ(cpu.Reg.A)
}

// Transfer X register to the stack pointer
func (cpu *CPU) txs(inst *Instruction, operand []byte) {
	cpu.Reg.SP = cpu.Reg.X
}

// Transfer Y register to the Accumulator
func (cpu *CPU) tya(inst *Instruction, operand []byte) {
	cpu.Reg.A = cpu.Reg.Y
	cpu.updateNZ(cpu.Reg.A)
}

// Test and Reset Bits (65c02 only)
func (cpu *CPU) trb(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.setFlag(ZeroBit, (v&cpu.Reg.A) == 0)
	cpu.store(inst.Mode, operand, v&^cpu.Reg.A)
}

// Test and Set Bits (65c02 only)
func (cpu *CPU) tsb(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.setFlag(ZeroBit, (v&cpu.Reg.A) == 0)
	cpu.store(inst.Mode, operand, v|cpu.Reg.A)
}
