// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements a 6502 CPU instruction set and emulator.
//
// The CPU reaches the rest of the emulated system only through a Bus, which
// supplies byte reads and writes over the 16-bit address space and may
// intercept subroutine calls. A host uses call interception to emulate
// operating system entry points without modifying the emulated program.
package cpu

// Architecture selects the CPU chip: 6502 or 65c02
type Architecture byte

const (
	// NMOS 6502 CPU
	NMOS Architecture = iota

	// CMOS 65c02 CPU
	CMOS
)

func (a Architecture) String() string {
	if a == CMOS {
		return "65c02"
	}
	return "6502"
}

// Status is the result of an execution call.
type Status byte

const (
	// StatusOk means the instruction (or cycle) completed normally.
	StatusOk Status = iota

	// StatusStackFault means the stack pointer wrapped while StrictStack
	// was enabled.
	StatusStackFault

	// StatusIllegal means the fetched opcode has no defined behavior, or a
	// BRK had no handler to transfer control to.
	StatusIllegal
)

var statusNames = [...]string{
	StatusOk:         "ok",
	StatusStackFault: "stack fault",
	StatusIllegal:    "illegal instruction",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Construction flags
const (
	registersAllocated = 1 << iota
)

// CPU represents a single 6502 CPU. All memory accesses go through the
// bus handler slots.
type CPU struct {
	Arch        Architecture    // CPU architecture
	Reg         *Registers      // CPU registers
	Cycles      uint64          // total executed CPU cycles
	LastPC      uint16          // address of the most recently started instruction
	InstSet     *InstructionSet // Instruction set used by the CPU
	StrictStack bool            // report StatusStackFault when SP wraps

	bus         Bus
	read        ReadFunc
	write       WriteFunc
	call        CallFunc
	flags       uint
	exec        execState
	status      Status
	pageCrossed bool
	deltaCycles int8
	debugger    *Debugger
}

// New creates an emulated CPU attached to a bus. If reg is nil, the CPU
// allocates and owns its own register file, initialized by Registers.Init.
// A register file supplied by the caller is used as is and remains the
// caller's.
func New(arch Architecture, reg *Registers, bus Bus) *CPU {
	cpu := &CPU{
		Arch:    arch,
		InstSet: GetInstructionSet(arch),
		bus:     bus,
		read:    bus.Read,
		write:   bus.Write,
		call:    bus.Call,
	}

	if reg == nil {
		reg = new(Registers)
		reg.Init()
		cpu.flags |= registersAllocated
	}
	cpu.Reg = reg
	return cpu
}

// OwnsRegisters returns true if the CPU allocated its own register file.
func (cpu *CPU) OwnsRegisters() bool {
	return cpu.flags&registersAllocated != 0
}

// Close releases the CPU's register file if the CPU allocated it, and
// detaches the bus. A closed CPU must not be used again.
func (cpu *CPU) Close() {
	if cpu.OwnsRegisters() {
		*cpu.Reg = Registers{}
		cpu.flags &^= registersAllocated
	}
	cpu.Reg = nil
	cpu.bus = nil
	cpu.read, cpu.write, cpu.call = nil, nil, nil
	cpu.exec = execState{}
}

// SetPC updates the CPU program counter to 'addr'.
func (cpu *CPU) SetPC(addr uint16) {
	cpu.Reg.PC = addr
}

// GetInstruction returns the instruction opcode at the requested address.
func (cpu *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := cpu.read(addr)
	return cpu.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the next instruction following the
// instruction at addr.
func (cpu *CPU) NextAddr(addr uint16) uint16 {
	inst := cpu.GetInstruction(addr)
	return addr + uint16(inst.Length)
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (cpu *CPU) AttachDebugger(debugger *Debugger) {
	cpu.debugger = debugger
}

// DetachDebugger detaches the currently debugger from the CPU.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
}

// Fetch, decode and execute the instruction at PC. Returns the number of
// cycles the instruction takes and its status.
func (cpu *CPU) execute() (cycles int, status Status) {
	pc := cpu.Reg.PC
	opcode := cpu.read(pc)
	inst := cpu.InstSet.Lookup(opcode)
	cpu.LastPC = pc

	if inst.Illegal() {
		cpu.Reg.PC = pc + 1
		return int(inst.Cycles), StatusIllegal
	}

	// Fetch the operand (if any) and advance the PC
	var buf [2]byte
	operand := buf[:inst.Length-1]
	for i := range operand {
		operand[i] = cpu.read(pc + 1 + uint16(i))
	}
	cpu.Reg.PC = pc + uint16(inst.Length)

	cpu.status = StatusOk
	cpu.pageCrossed = false
	cpu.deltaCycles = 0
	inst.fn(cpu, inst, operand)

	cycles = int(int8(inst.Cycles) + cpu.deltaCycles)
	if cpu.pageCrossed {
		cycles += int(inst.BPCycles)
	}

	if cpu.debugger != nil {
		cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
	}
	return cycles, cpu.status
}

// Compute the effective address of a memory operand.
func (cpu *CPU) operandAddress(mode Mode, operand []byte) uint16 {
	switch mode {
	case ZPG, ABS:
		return operandToAddress(operand)
	case ZPX:
		return offsetZeroPage(operandToAddress(operand), cpu.Reg.X)
	case ZPY:
		return offsetZeroPage(operandToAddress(operand), cpu.Reg.Y)
	case ABX:
		var addr uint16
		addr, cpu.pageCrossed = offsetAddress(operandToAddress(operand), cpu.Reg.X)
		return addr
	case ABY:
		var addr uint16
		addr, cpu.pageCrossed = offsetAddress(operandToAddress(operand), cpu.Reg.Y)
		return addr
	case IDX:
		return cpu.loadZeroPageAddress(operand[0] + cpu.Reg.X)
	case IDY:
		var addr uint16
		addr, cpu.pageCrossed = offsetAddress(cpu.loadZeroPageAddress(operand[0]), cpu.Reg.Y)
		return addr
	case ZPI:
		return cpu.loadZeroPageAddress(operand[0])
	default:
		panic("Invalid addressing mode")
	}
}

// Load a byte value from using the requested addressing mode
// and the operand to determine where to load it from.
func (cpu *CPU) load(mode Mode, operand []byte) byte {
	switch mode {
	case IMM:
		return operand[0]
	case ACC:
		return cpu.Reg.A
	default:
		return cpu.read(cpu.operandAddress(mode, operand))
	}
}

// Store a byte value using the specified addressing mode and the
// variable-sized instruction operand to determine where to store it.
func (cpu *CPU) store(mode Mode, operand []byte, v byte) {
	if mode == ACC {
		cpu.Reg.A = v
		return
	}
	cpu.storeByte(cpu.operandAddress(mode, operand), v)
}

// Store the byte value 'v' at the address 'addr'.
func (cpu *CPU) storeByte(addr uint16, v byte) {
	if cpu.debugger != nil {
		cpu.debugger.onDataStore(cpu, addr, v)
	}
	cpu.write(addr, v)
}

// Load a little-endian 16-bit address.
func (cpu *CPU) loadAddress(addr uint16) uint16 {
	return uint16(cpu.read(addr)) | uint16(cpu.read(addr+1))<<8
}

// Load a 16-bit address from the zero page. The high byte of a pointer at
// $FF comes from $00.
func (cpu *CPU) loadZeroPageAddress(zp byte) uint16 {
	return uint16(cpu.read(uint16(zp))) | uint16(cpu.read(uint16(zp+1)))<<8
}

// Load a 16-bit address without carrying into the high byte. A pointer at
// $12FF takes its high byte from $1200, as the NMOS 6502 does.
func (cpu *CPU) loadAddressPageWrapped(addr uint16) uint16 {
	hi := (addr & 0xff00) | uint16(byte(addr)+1)
	return uint16(cpu.read(addr)) | uint16(cpu.read(hi))<<8
}

// Execute a branch using the instruction operand.
func (cpu *CPU) branch(operand []byte) {
	oldPC := cpu.Reg.PC
	cpu.Reg.PC = uint16(int32(oldPC) + int32(int8(operand[0])))
	cpu.deltaCycles++
	if ((cpu.Reg.PC ^ oldPC) & 0xff00) != 0 {
		cpu.deltaCycles++
	}
}

// Push a value 'v' onto the stack.
func (cpu *CPU) push(v byte) {
	if cpu.StrictStack && cpu.Reg.SP == 0x00 {
		cpu.status = StatusStackFault
	}
	cpu.storeByte(stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// Push the address 'addr' onto the stack.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// Pop a value from the stack and return it.
func (cpu *CPU) pop() byte {
	if cpu.StrictStack && cpu.Reg.SP == 0xff {
		cpu.status = StatusStackFault
	}
	cpu.Reg.SP++
	return cpu.read(stackAddress(cpu.Reg.SP))
}

// Pop a 16-bit address off the stack.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | (uint16(hi) << 8)
}

func (cpu *CPU) flag(f Flags) bool {
	return cpu.Reg.PS.Has(f)
}

func (cpu *CPU) setFlag(f Flags, on bool) {
	cpu.Reg.PS.Set(f, on)
}

// Update the Zero and Negative flags based on the value of 'v'.
func (cpu *CPU) updateNZ(v byte) {
	cpu.setFlag(ZeroBit, v == 0)
	cpu.setFlag(SignBit, (v&0x80) != 0)
}
