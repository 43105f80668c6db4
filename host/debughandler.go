// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"

	"github.com/beevik/u6502/cpu"
	"github.com/beevik/u6502/disasm"
)

// The debugHandler receives notifications from the cpu debugger and stops
// the host's run loop.
type debugHandler struct {
	host *Host
}

func newDebugHandler(h *Host) *debugHandler {
	return &debugHandler{host: h}
}

// A step-over breakpoint ends the step silently. Any other breakpoint
// reports its hit count and stops the run.
func (d *debugHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h := d.host
	if b.StepOver {
		h.state = stateStepOverBreakpoint
		return
	}

	h.state = stateBreakpoint
	h.printf("Breakpoint hit at $%04X (%s).\n", b.Address, hitString(b.Hits))
	h.displayPC()
}

// The store has not happened yet when this is called, so the written value
// is only known for conditional breakpoints.
func (d *debugHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h := d.host
	h.state = stateBreakpoint

	if b.Conditional {
		h.printf("Data breakpoint hit on address $%04X, value $%02X (%s).\n",
			b.Address, b.Value, hitString(b.Hits))
	} else {
		h.printf("Data breakpoint hit on address $%04X (%s).\n", b.Address, hitString(b.Hits))
	}

	if c.LastPC != c.Reg.PC {
		h.println(h.disassemble(c.LastPC, disasm.ShowAll))
	}
}

func hitString(n int) string {
	if n == 1 {
		return "1 hit"
	}
	return fmt.Sprintf("%d hits", n)
}
