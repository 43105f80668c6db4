package host

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/beevik/u6502/cpu"
)

func runCommands(h *Host, commands ...string) string {
	out := new(bytes.Buffer)
	h.RunCommands(strings.NewReader(strings.Join(commands, "\n")), out, false)
	return out.String()
}

func expectOutput(t *testing.T, out string, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if !strings.Contains(out, l) {
			t.Errorf("output missing %q.\noutput:\n%s", l, out)
		}
	}
}

func TestCommandRun(t *testing.T) {
	h := New(cpu.NMOS)
	out := runCommands(h,
		"memory set $1000 $A9 $41 $20 $EE $FF $20 $00 $00",
		"register pc $1000",
		"disassemble $1000 1",
		"run",
		"quit",
		"register a $99",
	)
	expectOutput(t, out,
		"Stored 8 byte(s) at $1000.",
		"Register PC set to $1000.",
		"LDA #$41",
		"Running from $1000.",
		"AProgram halted at $1005.",
	)
	if strings.Contains(out, "Register A set") {
		t.Error("command after quit was processed")
	}
}

func TestCommandBreakpoints(t *testing.T) {
	h := New(cpu.NMOS)
	h.System().Mem.StoreBytes(0x1000, []byte{
		0xa9, 0x41, // LDA #$41
		0x8d, 0x00, 0x20, // STA $2000
		0xea,             // NOP
		0x20, 0x00, 0x00, // JSR HALT
	})
	out := runCommands(h,
		"r pc $1000",
		"ba $1005",
		"dba $2000 $41",
		"run",
		"r",
		"bd $1005",
		"dbl",
		"run",
		"bl",
		"be $1005",
		"dbd $2000",
		"r pc $1000",
		"run",
	)
	expectOutput(t, out,
		"Breakpoint added at $1005.",
		"Conditional data breakpoint added at $2000 for value $41.",
		"Data breakpoint hit on address $2000, value $41 (1 hit).",
		"Breakpoint hit at $1005 (1 hit).",
		"Breakpoint hit at $1005 (2 hits).",
		"PC=$1005",
		"Breakpoint at $1005 disabled.",
		"$2000 true     $41     1",
		"Program halted at $1006.",
		"$1005 false    1",
	)
}

func TestCommandStep(t *testing.T) {
	h := New(cpu.NMOS)
	h.System().Mem.StoreBytes(0x1000, []byte{
		0x20, 0x00, 0x11, // JSR $1100
		0xea, // NOP
	})
	h.System().Mem.StoreBytes(0x1100, []byte{
		0xe8, // INX
		0xe8, // INX
		0x60, // RTS
	})
	h.System().CPU.SetPC(0x1000)

	runCommands(h, "step over")
	c := h.System().CPU
	if c.Reg.PC != 0x1003 || c.Reg.X != 2 {
		t.Errorf("step over failed. PC=$%04X X=%d", c.Reg.PC, c.Reg.X)
	}
	if h.debugger.GetBreakpoint(0x1003) != nil {
		t.Error("temporary breakpoint not removed")
	}

	c.SetPC(0x1000)
	runCommands(h, "step in 2")
	if c.Reg.PC != 0x1101 {
		t.Errorf("step in failed. PC=$%04X", c.Reg.PC)
	}

	runCommands(h, "tick")
	if !c.Busy() || c.LastPC != 0x1101 {
		t.Error("tick did not start an instruction")
	}
	out := runCommands(h, "tick 1")
	expectOutput(t, out, "Cycles=")
	if c.Busy() {
		t.Error("INX still in progress after two ticks")
	}
}

func TestCommandMemoryAndVectors(t *testing.T) {
	h := New(cpu.NMOS)
	out := runCommands(h,
		"ms $2000 $48 $49",
		"m $2000 2",
		"vector reset $1234",
		"vector",
		"reset",
		"annotate $1234 entry point",
		"d $1234 1",
		"irq",
		"nmi",
	)
	expectOutput(t, out,
		"2000- 48 49",
		"HI",
		"RESET ($FFFC) = $1234",
		"NMI   ($FFFA) = $0000",
		"CPU reset. PC=$1234.",
		"; entry point",
		"IRQ ignored: interrupts are disabled.",
		"NMI taken. Vector $0000.",
	)
}

func TestCommandSettings(t *testing.T) {
	h := New(cpu.NMOS)
	out := runCommands(h,
		"set strict on",
		"set trap off",
		"set hexmode 5",
		"set bogus 1",
		"set",
	)
	expectOutput(t, out,
		"Setting updated.",
		"invalid bool value",
		"setting 'bogus' not found",
		"StrictStack",
	)
	if !h.System().CPU.StrictStack {
		t.Error("StrictStack not applied to the CPU")
	}
	if len(h.System().Traps()) != 0 {
		t.Error("MOS traps still installed")
	}

	out = runCommands(h, "trap add oswrch", "trap list", "trap remove $ffee", "trap remove $ffee")
	expectOutput(t, out,
		"Trap OSWRCH added at $FFEE.",
		"$FFEE OSWRCH",
		"Trap at $FFEE removed.",
		"No trap was installed at $FFEE.",
	)
}

func TestSettingsKeepScriptTraps(t *testing.T) {
	h := New(cpu.NMOS)
	err := h.System().RunScriptString(`trap(65518, function(src) return src + 3 end, "MYPRINT")`)
	if err != nil {
		t.Fatal(err)
	}

	runCommands(h, "set hexmode on", "set strict on")
	if tr := h.System().GetTrap(OSWRCH); tr == nil || tr.Name != "MYPRINT" {
		t.Fatal("script trap replaced by a settings change")
	}

	runCommands(h, "set trap off")
	if h.System().GetTrap(OSRDCH) != nil {
		t.Error("MOS trap still installed")
	}
	runCommands(h, "set trap on")
	if tr := h.System().GetTrap(OSRDCH); tr == nil || tr.Name != "OSRDCH" {
		t.Error("MOS trap not restored")
	}
	if tr := h.System().GetTrap(OSWRCH); tr == nil || tr.Name != "MYPRINT" {
		t.Error("script trap replaced when the MOS traps were restored")
	}
}

func TestCommandHelp(t *testing.T) {
	h := New(cpu.NMOS)
	out := runCommands(h, "help", "help breakpoint", "? step in", "help bogus", "frobnicate", "breakpoint")
	expectOutput(t, out,
		"u6502 commands:",
		"Breakpoint commands",
		"Annotate an address",
		"breakpoint commands:",
		"Add a breakpoint",
		"Usage: step in [<count>]",
		"Shortcut: si",
		"Command not found.",
	)
	if n := strings.Count(out, "Command not found"); n != 3 {
		t.Errorf("expected 3 lookup failures, got %d", n)
	}
}

func TestSettings(t *testing.T) {
	s := newSettings()

	if err := s.Set("hex", true); err != nil || !s.HexMode {
		t.Errorf("Set(hex) failed: %v", err)
	}
	if err := s.Set("memdump", uint16(32)); err != nil || s.MemDumpBytes != 32 {
		t.Errorf("Set(memdump) failed: %v", err)
	}
	if err := s.Set("compactmode", uint16(1)); err == nil {
		t.Error("number accepted for a bool setting")
	}
	if err := s.Set("next", uint16(1)); err == nil {
		t.Error("ambiguous setting accepted")
	}
	if k := s.Kind("strictstack"); k != reflect.Bool {
		t.Errorf("Kind incorrect. exp: bool, got: %v", k)
	}
	if k := s.Kind("nothing"); k != reflect.Invalid {
		t.Errorf("Kind incorrect. exp: invalid, got: %v", k)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		s       string
		hexMode bool
		v       uint16
		ok      bool
	}{
		{"$1F", false, 0x1f, true},
		{"0x10", false, 0x10, true},
		{"10", false, 10, true},
		{"10", true, 0x10, true},
		{"zz", false, 0, false},
		{"70000", false, 0, false},
		{"$", false, 0, false},
	}

	for _, tt := range tests {
		v, err := parseNumber(tt.s, tt.hexMode)
		if (err == nil) != tt.ok || v != tt.v {
			t.Errorf("parseNumber(%q, %v) = $%04X, %v", tt.s, tt.hexMode, v, err)
		}
	}
}

func TestParseAddr(t *testing.T) {
	h := New(cpu.NMOS)
	h.System().CPU.Reg.X = 0x33

	tests := []struct {
		s string
		v uint16
	}{
		{"x", 0x33},
		{"$FFEE", 0xffee},
		{"osrdch", OSRDCH},
		{"42", 42},
	}
	for _, tt := range tests {
		v, err := h.parseAddr(tt.s)
		if err != nil || v != tt.v {
			t.Errorf("parseAddr(%q) = $%04X, %v", tt.s, v, err)
		}
	}
	if _, err := h.parseAddr("bogus"); err == nil {
		t.Error("parseAddr accepted an unknown name")
	}
}
