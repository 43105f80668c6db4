// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

type execKind byte

const (
	execIdle        execKind = iota // between instructions
	execInstruction                 // draining an instruction's cycles
	execInterrupt                   // draining interrupt entry cycles
)

// execState tracks progress through a multi-cycle operation. The effects
// of an instruction are applied on its first tick; the remaining ticks
// only account for its duration. A fault raised by interrupt entry is held
// until the queued cycles have been drained.
type execState struct {
	kind      execKind
	remaining int
	status    Status
	fault     Status
}

// Busy returns true if the CPU is part way through an instruction or an
// interrupt entry sequence.
func (cpu *CPU) Busy() bool {
	return cpu.exec.kind != execIdle
}

// Tick advances the CPU by a single clock cycle. When the CPU is idle, the
// tick fetches and executes the next instruction, and its status is
// returned. The tick that finishes an interrupt entry returns the entry's
// stack fault, if any. Other ticks return StatusOk.
func (cpu *CPU) Tick() Status {
	status := StatusOk
	if cpu.exec.kind == execIdle {
		cycles, s := cpu.execute()
		cpu.exec = execState{
			kind:      execInstruction,
			remaining: cycles,
			status:    s,
		}
		status = s
	}

	cpu.Cycles++
	cpu.exec.remaining--
	if cpu.exec.remaining <= 0 {
		if cpu.exec.fault != StatusOk {
			status = cpu.exec.fault
		}
		cpu.exec = execState{}
	}
	return status
}

// Step completes exactly one instruction and returns its status. An
// instruction already in progress is finished. Pending interrupt entry
// cycles are drained first and do not count as the instruction. If the
// interrupt entry faulted, the fault is returned and no instruction runs.
func (cpu *CPU) Step() Status {
	if cpu.exec.kind == execInstruction {
		status := cpu.exec.status
		if s := cpu.drain(); status == StatusOk {
			status = s
		}
		return status
	}
	if s := cpu.drain(); s != StatusOk {
		return s
	}

	status := cpu.Tick()
	if s := cpu.drain(); status == StatusOk {
		status = s
	}
	return status
}

// Run steps the CPU until an instruction returns a status other than
// StatusOk. Stopping a run is up to the bus, typically by returning zero
// from a call to address 0 so the BRK that reached it is reported as
// illegal.
func (cpu *CPU) Run() Status {
	for {
		if status := cpu.Step(); status != StatusOk {
			return status
		}
	}
}

// Tick through whatever is in flight. Returns the first fault seen.
func (cpu *CPU) drain() Status {
	status := StatusOk
	for cpu.exec.kind != execIdle {
		if s := cpu.Tick(); status == StatusOk {
			status = s
		}
	}
	return status
}
