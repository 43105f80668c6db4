package disasm_test

import (
	"strings"
	"testing"

	"github.com/beevik/u6502/cpu"
	"github.com/beevik/u6502/disasm"
)

func newCPU(code ...byte) *cpu.CPU {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(0x1000, code)
	c := cpu.New(cpu.NMOS, nil, mem)
	c.SetPC(0x1000)
	return c
}

func TestLine(t *testing.T) {
	c := newCPU(0x8d, 0x00, 0x15)

	line, next := disasm.Line(c, 0x1000, 0)
	exp := "1000-   8D 00 15    STA $1500      "
	if line != exp {
		t.Errorf("line incorrect.\nexp: %q\ngot: %q", exp, line)
	}
	if next != 0x1003 {
		t.Errorf("next incorrect. exp: $1003, got: $%04X", next)
	}

	line, _ = disasm.Line(c, 0x1000, disasm.Compact)
	exp = "1000- 8D 00 15  STA $1500  "
	if line != exp {
		t.Errorf("compact line incorrect.\nexp: %q\ngot: %q", exp, line)
	}

	line, _ = disasm.Line(c, 0x1000, disasm.ShowAll)
	if !strings.Contains(line, c.Dump()) || !strings.HasSuffix(line, " C=0") {
		t.Errorf("register and cycle columns missing: %q", line)
	}
}

func TestBlock(t *testing.T) {
	c := newCPU(
		0xa2, 0x41, // LDX #$41
		0x8a,             // TXA
		0x20, 0xee, 0xff, // JSR $FFEE
		0x02, // illegal
	)

	lines, next := disasm.Block(c, 0x1000, 4, disasm.Compact)
	if len(lines) != 4 {
		t.Fatalf("line count incorrect. exp: 4, got: %d", len(lines))
	}
	if next != 0x1007 {
		t.Errorf("next incorrect. exp: $1007, got: $%04X", next)
	}

	for i, mne := range []string{"LDX #$41", "TXA", "JSR $FFEE", cpu.IllegalName} {
		if !strings.Contains(lines[i], mne) {
			t.Errorf("line %d incorrect. exp to contain %q, got: %q", i, mne, lines[i])
		}
	}
}
