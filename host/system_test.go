package host

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/u6502/cpu"
	"github.com/pkg/errors"
)

func newTestSystem(org uint16, code ...byte) (*System, *bytes.Buffer) {
	s := NewSystem(cpu.NMOS)
	out := new(bytes.Buffer)
	s.SetOutput(out)
	s.Mem.StoreBytes(org, code)
	s.CPU.SetPC(org)
	return s, out
}

func TestAlphabet(t *testing.T) {
	s, out := newTestSystem(0x1000,
		0xa2, 0x41, // LDX #$41
		0x8a,             // TXA
		0x20, 0xee, 0xff, // JSR OSWRCH
		0xe8,       // INX
		0xe0, 0x5b, // CPX #$5B
		0xd0, 0xf7, // BNE $1002
		0x20, 0x00, 0x00, // JSR HALT
	)
	defer s.Close()

	status := s.Run()
	if status != cpu.StatusOk {
		t.Errorf("status incorrect. exp: %v, got: %v", cpu.StatusOk, status)
	}
	if !s.Halted {
		t.Error("system not halted")
	}
	if got := out.String(); got != "ABCDEFGHIJKLMNOPQRSTUVWXYZ" {
		t.Errorf("output incorrect. got: %q", got)
	}
	if s.CPU.LastPC != 0x100b {
		t.Errorf("LastPC incorrect. exp: $100B, got: $%04X", s.CPU.LastPC)
	}
}

func TestEcho(t *testing.T) {
	s, out := newTestSystem(0x1000,
		0x20, 0xe0, 0xff, // JSR OSRDCH
		0xb0, 0x06, // BCS $100B
		0x20, 0xee, 0xff, // JSR OSWRCH
		0x4c, 0x00, 0x10, // JMP $1000
		0x20, 0x00, 0x00, // JSR HALT
	)
	defer s.Close()
	s.SetInput(strings.NewReader("hello"))

	s.Run()
	if got := out.String(); got != "hello" {
		t.Errorf("output incorrect. got: %q", got)
	}
	if !s.CPU.Reg.PS.Has(cpu.CarryBit) || s.CPU.Reg.A != 0 {
		t.Error("end of input not reported")
	}
}

func TestNewlines(t *testing.T) {
	s, out := newTestSystem(0x1000,
		0xa9, 0x0d, // LDA #$0D
		0x20, 0xe3, 0xff, // JSR OSASCI
		0xa9, 0x78, // LDA #'x'
		0x20, 0xe3, 0xff, // JSR OSASCI
		0x20, 0xe7, 0xff, // JSR OSNEWL
		0x00, // BRK
	)
	defer s.Close()

	status := s.Run()
	if status != cpu.StatusIllegal {
		t.Errorf("status incorrect. exp: %v, got: %v", cpu.StatusIllegal, status)
	}
	if !s.Halted {
		t.Error("BRK did not reach the halt trap")
	}
	if got := out.String(); got != "\nx\n" {
		t.Errorf("output incorrect. got: %q", got)
	}
}

func TestTraps(t *testing.T) {
	s := NewSystem(cpu.CMOS)
	defer s.Close()

	traps := s.Traps()
	names := make([]string, len(traps))
	for i, t := range traps {
		names[i] = t.Name
	}
	exp := "HALT OSRDCH OSASCI OSNEWL OSWRCH"
	if got := strings.Join(names, " "); got != exp {
		t.Errorf("traps incorrect.\nexp: %s\ngot: %s", exp, got)
	}

	s.AddTrap("MINE", OSWRCH, func(s *System, source uint16) uint16 { return 0 })
	s.RemoveMOS()
	if len(s.Traps()) != 1 || s.GetTrap(OSWRCH).Name != "MINE" {
		t.Error("RemoveMOS removed a replaced trap")
	}
	s.InstallMOS()
	if s.GetTrap(OSWRCH).Name != "MINE" {
		t.Error("InstallMOS replaced an existing trap")
	}
	if !s.RemoveTrap(OSWRCH) {
		t.Error("RemoveTrap failed")
	}
	if s.RemoveTrap(OSWRCH) {
		t.Error("RemoveTrap succeeded twice")
	}

	s.InstallMOS()
	if len(s.Traps()) != len(mosTraps) {
		t.Errorf("InstallMOS installed %d traps", len(s.Traps()))
	}
}

func TestLookupMOS(t *testing.T) {
	tr, err := LookupMOS("osw")
	if err != nil || tr.Addr != OSWRCH {
		t.Errorf("LookupMOS(osw) failed: %v", err)
	}
	tr, err = LookupMOS("HALT")
	if err != nil || tr.Addr != HALT {
		t.Errorf("LookupMOS(HALT) failed: %v", err)
	}
	if _, err = LookupMOS("os"); err == nil {
		t.Error("ambiguous MOS name accepted")
	}
	if _, err = LookupMOS("xyz"); err == nil {
		t.Error("unknown MOS name accepted")
	}
}

func TestLoad(t *testing.T) {
	s := NewSystem(cpu.NMOS)
	defer s.Close()

	end, err := s.LoadBytes("code", 0x2000, []byte{1, 2, 3})
	if err != nil || end != 0x2002 {
		t.Errorf("LoadBytes failed. end: $%04X, err: %v", end, err)
	}
	if s.Read(0x2001) != 2 {
		t.Error("image not stored")
	}

	if _, err = s.LoadBytes("empty", 0x2000, nil); errors.Cause(err) != ErrEmptyImage {
		t.Errorf("expected ErrEmptyImage, got %v", err)
	}
	if _, err = s.LoadBytes("big", 0xffff, []byte{1, 2}); errors.Cause(err) != ErrImageTooLarge {
		t.Errorf("expected ErrImageTooLarge, got %v", err)
	}
	if end, err = s.LoadBytes("top", 0xfffe, []byte{1, 2}); err != nil || end != 0xffff {
		t.Errorf("image ending at $FFFF rejected: %v", err)
	}

	dir := t.TempDir()
	filename := filepath.Join(dir, "prog.bin")
	if err = os.WriteFile(filename, []byte{0xea, 0xea, 0x60}, 0o644); err != nil {
		t.Fatal(err)
	}
	end, err = s.Load(filename, 0x0600)
	if err != nil || end != 0x0602 || s.Read(0x0602) != 0x60 {
		t.Errorf("Load failed. end: $%04X, err: %v", end, err)
	}

	_, err = s.Load(filepath.Join(dir, "missing.bin"), 0x0600)
	if err == nil || !strings.Contains(err.Error(), "missing.bin") {
		t.Errorf("missing file error incorrect: %v", err)
	}
}

func TestScript(t *testing.T) {
	s, out := newTestSystem(0x1000,
		0x20, 0x00, 0x30, // JSR $3000
		0x20, 0x00, 0x00, // JSR HALT
	)
	defer s.Close()

	err := s.RunScriptString(`
		poke(8192, 66)
		reg("a", peek(8192))
		trap(12288, function(src)
			write("called from " .. src)
			return src + 3
		end, "TEST")
	`)
	if err != nil {
		t.Fatal(err)
	}

	if s.CPU.Reg.A != 0x42 {
		t.Errorf("register A incorrect. exp: $42, got: $%02X", s.CPU.Reg.A)
	}
	if tr := s.GetTrap(0x3000); tr == nil || tr.Name != "TEST" {
		t.Fatal("script trap not installed")
	}

	s.Run()
	if got := out.String(); got != "called from 4096" {
		t.Errorf("output incorrect. got: %q", got)
	}
	if s.CPU.LastPC != 0x1003 {
		t.Errorf("LastPC incorrect. exp: $1003, got: $%04X", s.CPU.LastPC)
	}
}

func TestScriptErrors(t *testing.T) {
	s, _ := newTestSystem(0x1000,
		0x20, 0x00, 0x30, // JSR $3000
		0xea, // NOP
	)
	defer s.Close()

	if err := s.RunScriptString("this is not lua"); err == nil {
		t.Error("syntax error not reported")
	}
	if err := s.RunScriptString(`reg("q")`); err == nil {
		t.Error("unknown register not reported")
	}
	if err := s.RunScript(filepath.Join(t.TempDir(), "none.lua")); err == nil {
		t.Error("missing script not reported")
	}

	if err := s.RunScriptString(`trap(12288, function(src) error("boom") end)`); err != nil {
		t.Fatal(err)
	}
	if tr := s.GetTrap(0x3000); tr == nil || tr.Name != "SCRIPT_3000" {
		t.Fatal("default trap name incorrect")
	}

	s.Run()
	if !s.Halted || s.Err == nil || !strings.Contains(s.Err.Error(), "boom") {
		t.Errorf("trap failure not recorded: %v", s.Err)
	}
}
