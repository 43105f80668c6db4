// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a computer system
// with a 6502 CPU, 64K of memory, operating system call traps, a built-in
// debugger, and other useful tools.
//
// Within the host it is possible to load machine code into memory, debug
// and step through machine code a cycle or an instruction at a time,
// measure the number of CPU cycles elapsed, set address and data
// breakpoints, raise interrupts, dump and disassemble the contents of
// memory, manipulate CPU registers and memory, and script call traps in
// Lua.
package host

import (
	"bufio"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/u6502/cpu"
	"github.com/beevik/u6502/disasm"
	"github.com/pkg/errors"
)

var errQuit = errors.New("exiting program")

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
	stateStepOverBreakpoint
)

// A selection is a looked-up command and its arguments.
type selection struct {
	Command *cmd.Command
	Args    []string
}

// A Host represents a fully emulated 6502 system, 64K of memory, a built-in
// debugger, and other useful tools.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	sys         *System
	debugger    *cpu.Debugger
	lastCmd     *selection
	state       state
	settings    *settings
	trapOS      bool // MOS traps installed by the TrapOS setting
	annotations map[uint16]string
}

// New creates a new 6502 host environment using the requested CPU
// architecture.
func New(arch cpu.Architecture) *Host {
	h := &Host{
		state:       stateProcessingCommands,
		settings:    newSettings(),
		trapOS:      true,
		annotations: make(map[uint16]string),
	}

	h.sys = NewSystem(arch)

	// Create a CPU debugger and attach it to the CPU.
	h.debugger = cpu.NewDebugger(newDebugHandler(h))
	h.sys.CPU.AttachDebugger(h.debugger)

	return h
}

// System returns the emulated system driven by the host.
func (h *Host) System() *System {
	return h.sys
}

// SetStrictStack enables or disables stack fault detection.
func (h *Host) SetStrictStack(on bool) {
	h.settings.StrictStack = on
	h.onSettingsUpdate()
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered. Program output
// produced by the MOS traps is written to the same writer.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive
	h.sys.SetOutput(h.output)

	if interactive {
		h.println()
	}

	h.displayPC()

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c selection
		if line != "" {
			command, args, err := cmds.LookupCommand(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
			c = selection{Command: command, Args: args}
		} else if h.interactive && h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, selection) error)
		err = handler(h, c)
		h.flush()
		if err != nil {
			break
		}
	}
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.println()

	if h.state == stateRunning {
		h.displayPC()
	}
	if h.state == stateProcessingCommands {
		h.prompt()
	}
	h.state = stateProcessingCommands
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return strings.TrimSpace(h.input.Text()), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) displayPC() {
	if h.interactive {
		h.println(h.disassemble(h.sys.CPU.Reg.PC, disasm.ShowAll))
	}
}

// Parse a required address argument, printing an error on failure.
func (h *Host) argAddr(c selection, i int) (uint16, bool) {
	addr, err := h.parseAddr(c.Args[i])
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

func (h *Host) cmdAnnotate(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	annotation := strings.Join(c.Args[1:], " ")
	if annotation == "" {
		delete(h.annotations, addr)
		h.printf("Annotation removed at $%04X.\n", addr)
	} else {
		h.annotations[addr] = annotation
		h.printf("Annotation added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdBreakpointList(c selection) error {
	h.println("Addr  Enabled  Hits")
	h.println("----- -------  ----")
	for _, b := range h.debugger.GetBreakpoints() {
		h.printf("$%04X %-5v    %d\n", b.Address, !b.Disabled, b.Hits)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	h.debugger.AddBreakpoint(addr)
	h.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	if h.debugger.GetBreakpoint(addr) == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveBreakpoint(addr)
	h.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointEnable(c selection) error {
	return h.enableBreakpoint(c, true)
}

func (h *Host) cmdBreakpointDisable(c selection) error {
	return h.enableBreakpoint(c, false)
}

func (h *Host) enableBreakpoint(c selection, enable bool) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDataBreakpointList(c selection) error {
	h.println("Addr  Enabled  Value   Hits")
	h.println("----- -------  ------  ----")
	for _, b := range h.debugger.GetDataBreakpoints() {
		if b.Conditional {
			h.printf("$%04X %-5v    $%02X     %d\n", b.Address, !b.Disabled, b.Value, b.Hits)
		} else {
			h.printf("$%04X %-5v    <none>  %d\n", b.Address, !b.Disabled, b.Hits)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	if len(c.Args) > 1 {
		value, ok := h.argAddr(c, 1)
		if !ok {
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, byte(value))
	} else {
		h.debugger.AddDataBreakpoint(addr)
		h.printf("Data breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointRemove(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	if h.debugger.GetDataBreakpoint(addr) == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	h.debugger.RemoveDataBreakpoint(addr)
	h.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointEnable(c selection) error {
	return h.enableDataBreakpoint(c, true)
}

func (h *Host) cmdDataBreakpointDisable(c selection) error {
	return h.enableDataBreakpoint(c, false)
}

func (h *Host) enableDataBreakpoint(c selection, enable bool) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	h.printf("Data breakpoint at $%04X %s.\n", addr, enabledString(enable))
	return nil
}

func (h *Host) cmdDisassemble(c selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextDisasmAddr
		if addr == 0 {
			addr = h.sys.CPU.Reg.PC
		}

	default:
		a, ok := h.argAddr(c, 0)
		if !ok {
			return nil
		}
		addr = a
	}

	lines := h.settings.DisasmLines
	if len(c.Args) > 1 {
		l, ok := h.argAddr(c, 1)
		if !ok {
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		h.println(h.disassemble(addr, 0))
		addr = h.sys.CPU.NextAddr(addr)
	}

	h.settings.NextDisasmAddr = addr
	h.lastCmd.Args = []string{"$", fmt.Sprintf("$%X", lines)}
	return nil
}

func (h *Host) cmdHelp(c selection) error {
	if err := cmds.GetHelp(h.output, c.Args); err != nil {
		h.printf("%v.\n", err)
	}
	return nil
}

func (h *Host) cmdIRQ(c selection) error {
	c6502 := h.sys.CPU
	if c6502.Reg.PS.Has(cpu.InterruptDisableBit) {
		h.println("IRQ ignored: interrupts are disabled.")
		return nil
	}
	c6502.IRQ()
	h.printf("IRQ taken. Vector $%04X.\n", c6502.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdNMI(c selection) error {
	h.sys.CPU.NMI()
	h.printf("NMI taken. Vector $%04X.\n", h.sys.CPU.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdLoad(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 1)
	if !ok {
		return nil
	}

	end, err := h.sys.Load(c.Args[0], addr)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.sys.CPU.SetVector(cpu.VectorReset, addr)
	h.sys.CPU.SetPC(addr)
	h.settings.NextDisasmAddr = addr
	h.printf("Loaded '%s' to $%04X..$%04X\n", c.Args[0], addr, end)
	return nil
}

func (h *Host) cmdMemoryDump(c selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.settings.NextMemDumpAddr

	default:
		a, ok := h.argAddr(c, 0)
		if !ok {
			return nil
		}
		addr = a
	}

	bytes := uint16(h.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		b, ok := h.argAddr(c, 1)
		if !ok {
			return nil
		}
		bytes = b
	}

	h.dumpMemory(addr, bytes)

	h.settings.NextMemDumpAddr = addr + bytes
	h.lastCmd.Args = []string{"$", fmt.Sprintf("$%X", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c selection) error {
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	for i := 1; i < len(c.Args); i++ {
		v, ok := h.argAddr(c, i)
		if !ok {
			return nil
		}
		h.sys.Write(addr+uint16(i-1), byte(v))
	}
	h.printf("Stored %d byte(s) at $%04X.\n", len(c.Args)-1, addr)
	return nil
}

func (h *Host) cmdQuit(c selection) error {
	return errQuit
}

func (h *Host) cmdRegister(c selection) error {
	if len(c.Args) == 0 {
		h.println(h.disassemble(h.sys.CPU.Reg.PC, disasm.ShowAll))
		return nil
	}
	if len(c.Args) < 2 {
		h.displayUsage(c.Command)
		return nil
	}

	key := strings.ToLower(c.Args[0])
	reg := h.sys.CPU.Reg

	if f, ok := flagNames[key]; ok {
		on, err := stringToBool(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		reg.PS.Set(f, on)
		h.printf("Flag %s set to %v.\n", key, on)
		return nil
	}

	v, ok := h.argAddr(c, 1)
	if !ok {
		return nil
	}
	if !setRegister(reg, key, v) {
		h.printf("Register '%s' not found.\n", c.Args[0])
		return nil
	}

	v, digits, _ := registerValue(reg, key)
	h.printf("Register %s set to $%0*X.\n", strings.ToUpper(key), digits, v)
	if key == "pc" || key == "." {
		h.settings.NextDisasmAddr = v
	}
	return nil
}

func (h *Host) cmdReset(c selection) error {
	h.sys.CPU.Reset()
	h.settings.NextDisasmAddr = h.sys.CPU.Reg.PC
	h.printf("CPU reset. PC=$%04X.\n", h.sys.CPU.Reg.PC)
	h.displayPC()
	return nil
}

func (h *Host) cmdRun(c selection) error {
	if len(c.Args) > 0 {
		pc, ok := h.argAddr(c, 0)
		if !ok {
			return nil
		}
		h.sys.CPU.SetPC(pc)
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.sys.CPU.Reg.PC)

	h.sys.Halted = false
	h.state = stateRunning
	for h.state == stateRunning {
		h.step()
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.sys.CPU.Reg.PC
	return nil
}

func (h *Host) cmdScript(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	if err := h.sys.RunScript(c.Args[0]); err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.printf("Script '%s' complete.\n", c.Args[0])
	return nil
}

func (h *Host) cmdSet(c selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)

	case 1:
		h.displayUsage(c.Command)

	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")

		var err error
		switch h.settings.Kind(key) {
		case reflect.Invalid:
			err = errors.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		default:
			var v uint16
			v, err = h.parseAddr(value)
			if err == nil {
				err = h.settings.Set(key, v)
			}
		}

		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(c selection) error {
	return h.stepCommand(c, h.step)
}

func (h *Host) cmdStepOver(c selection) error {
	return h.stepCommand(c, h.stepOver)
}

func (h *Host) stepCommand(c selection, step func()) error {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseAddr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	// Step the CPU count times.
	h.sys.Halted = false
	h.state = stateRunning
	for i := count - 1; i >= 0 && h.state == stateRunning; i-- {
		step()
		switch {
		case i == h.settings.MaxStepLines:
			h.println("...")
		case i < h.settings.MaxStepLines:
			h.displayPC()
		}
	}
	h.state = stateProcessingCommands

	h.settings.NextDisasmAddr = h.sys.CPU.Reg.PC
	return nil
}

func (h *Host) cmdTick(c selection) error {
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseAddr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	h.sys.Halted = false
	h.state = stateRunning
	for i := 0; i < count && h.state == stateRunning; i++ {
		h.checkStatus(h.sys.CPU.Tick())
	}
	h.state = stateProcessingCommands

	cpu := h.sys.CPU
	if cpu.Busy() {
		h.printf("Cycles=%d, instruction at $%04X in progress.\n", cpu.Cycles, cpu.LastPC)
	} else {
		h.printf("Cycles=%d.\n", cpu.Cycles)
	}
	h.displayPC()
	return nil
}

func (h *Host) cmdTrapList(c selection) error {
	h.println("Addr  Name")
	h.println("----- ----------------")
	for _, t := range h.sys.Traps() {
		h.printf("$%04X %s\n", t.Addr, t.Name)
	}
	return nil
}

func (h *Host) cmdTrapAdd(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	t, err := LookupMOS(c.Args[0])
	if err != nil {
		h.printf("MOS trap '%s' not found.\n", c.Args[0])
		return nil
	}

	h.sys.AddTrap(t.Name, t.Addr, t.Fn)
	h.printf("Trap %s added at $%04X.\n", t.Name, t.Addr)
	return nil
}

func (h *Host) cmdTrapRemove(c selection) error {
	if len(c.Args) < 1 {
		h.displayUsage(c.Command)
		return nil
	}

	addr, ok := h.argAddr(c, 0)
	if !ok {
		return nil
	}

	if !h.sys.RemoveTrap(addr) {
		h.printf("No trap was installed at $%04X.\n", addr)
		return nil
	}
	h.printf("Trap at $%04X removed.\n", addr)
	return nil
}

func (h *Host) cmdVector(c selection) error {
	c6502 := h.sys.CPU
	if len(c.Args) == 0 {
		for _, v := range []cpu.Vector{cpu.VectorNMI, cpu.VectorReset, cpu.VectorIRQ} {
			h.printf("%-5s ($%04X) = $%04X\n", v, uint16(v), c6502.GetVector(v))
		}
		return nil
	}

	v, ok := vectorNames[strings.ToLower(c.Args[0])]
	if !ok {
		h.printf("Vector '%s' not found.\n", c.Args[0])
		return nil
	}

	if len(c.Args) > 1 {
		addr, ok := h.argAddr(c, 1)
		if !ok {
			return nil
		}
		c6502.SetVector(v, addr)
	}
	h.printf("%-5s ($%04X) = $%04X\n", v, uint16(v), c6502.GetVector(v))
	return nil
}

func (h *Host) step() {
	h.checkStatus(h.sys.CPU.Step())
}

// Stop running if the last instruction failed or halted the system.
func (h *Host) checkStatus(status cpu.Status) {
	switch {
	case h.sys.Err != nil:
		h.printf("Trap failed: %v.\n", h.sys.Err)
		h.sys.Err = nil
	case h.sys.Halted:
		h.printf("Program halted at $%04X.\n", h.sys.CPU.LastPC)
	case status != cpu.StatusOk:
		h.printf("CPU stopped: %v at $%04X.\n", status, h.sys.CPU.LastPC)
	default:
		return
	}
	h.flush()
	h.state = stateProcessingCommands
}

func (h *Host) stepOver() {
	cpu := h.sys.CPU

	// JSR instructions need to be handled specially.
	inst := cpu.GetInstruction(cpu.Reg.PC)
	if inst.Name != "JSR" {
		h.step()
		return
	}

	// Place a step-over breakpoint on the instruction following the JSR.
	// Either modify an already existing breakpoint on that instruction, or
	// create a temporary one.
	next := cpu.Reg.PC + uint16(inst.Length)
	tmpBreakpointCreated := false
	b := h.debugger.GetBreakpoint(next)
	if b == nil {
		b = h.debugger.AddBreakpoint(next)
		tmpBreakpointCreated = true
	}
	b.StepOver = true

	// Run until interrupted.
	for h.state == stateRunning {
		h.step()
	}
	b.StepOver = false

	// If we were interrupted by the temporary step-over breakpoint,
	// then continue as normal.
	if h.state == stateStepOverBreakpoint {
		h.state = stateRunning
	}

	// Remove the temporarily created breakpoint.
	if tmpBreakpointCreated {
		h.debugger.RemoveBreakpoint(next)
	}
}

func (h *Host) onSettingsUpdate() {
	h.sys.CPU.StrictStack = h.settings.StrictStack
	if h.settings.TrapOS == h.trapOS {
		return
	}
	if h.settings.TrapOS {
		h.sys.InstallMOS()
	} else {
		h.sys.RemoveMOS()
	}
	h.trapOS = h.settings.TrapOS
}

// Parse an address or value. Register names, MOS entry point names and
// numbers are accepted.
func (h *Host) parseAddr(s string) (uint16, error) {
	name := strings.ToLower(s)
	if v, _, ok := registerValue(h.sys.CPU.Reg, name); ok {
		return v, nil
	}
	v, err := parseNumber(s, h.settings.HexMode)
	if err == nil {
		return v, nil
	}
	if t, errMOS := LookupMOS(name); errMOS == nil {
		return t.Addr, nil
	}
	return 0, err
}

func (h *Host) disassemble(addr uint16, flags disasm.Flags) string {
	if h.settings.CompactMode {
		flags |= disasm.Compact
	}
	line, _ := disasm.Line(h.sys.CPU, addr, flags)
	if anno, ok := h.annotations[addr]; ok {
		line += " ; " + anno
	}
	return line
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.sys.Read(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := uint16(start)
	for r := start; r < stop; r += 8 {
		addrToBuf(a, buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= addr0 && a <= addr1 {
				m := h.sys.Read(a)
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		h.printf("Usage: %s\n", c.Usage)
	} else {
		h.println("<no usage text>")
	}
}
