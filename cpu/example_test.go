package cpu_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/beevik/u6502/cpu"
)

// Prints the alphabet through a trapped character output routine.
var alphabet = []byte{
	0xa2, 0x41, // LDX #'A'
	0x8a,             // TXA
	0x20, 0xee, 0xff, // JSR $FFEE
	0xe8,       // INX
	0xe0, 0x5b, // CPX #'Z'+1
	0xd0, 0xf7, // BNE $1002
	0xa9, 0x0a, // LDA #$0A
	0x20, 0xee, 0xff, // JSR $FFEE
	0x00, 0x00, // BRK
}

// charBus writes every byte passed to its $FFEE entry point.
type charBus struct {
	*cpu.FlatMemory
	reg *cpu.Registers
	out strings.Builder
	n   int
}

func (b *charBus) Call(addr, source uint16) uint16 {
	if addr == 0xffee {
		b.out.WriteByte(b.reg.A)
		b.n++
		return source + 3
	}
	return 0
}

func ExampleCPU_Run() {
	bus := &charBus{FlatMemory: cpu.NewFlatMemory()}
	bus.StoreBytes(0x1000, alphabet)

	c := cpu.New(cpu.NMOS, nil, bus)
	bus.reg = c.Reg
	c.SetVector(cpu.VectorReset, 0x1000)
	c.Reset()

	status := c.Run()
	fmt.Print(bus.out.String())
	fmt.Println(status)
	fmt.Println(c.Dump())
	// Output:
	// ABCDEFGHIJKLMNOPQRSTUVWXYZ
	// illegal instruction
	// PC=$1011 A=$0A X=$5B Y=$00 SP=$FF PS=$25 [-----I-C]
}

func ExampleCPU_Disassemble() {
	bus := cpu.NewFlatMemory()
	bus.StoreBytes(0x1000, alphabet)
	c := cpu.New(cpu.NMOS, nil, bus)

	for addr := uint16(0x1000); addr < 0x1000+uint16(len(alphabet)); {
		line, n := c.Disassemble(addr)
		fmt.Printf("%04X %s\n", addr, line)
		addr += uint16(n)
	}
	// Output:
	// 1000 LDX #$41
	// 1002 TXA
	// 1003 JSR $FFEE
	// 1006 INX
	// 1007 CPX #$5B
	// 1009 BNE $1002
	// 100B LDA #$0A
	// 100D JSR $FFEE
	// 1010 BRK
	// 1011 BRK
}

func TestAlphabetTrapCount(t *testing.T) {
	bus := &charBus{FlatMemory: cpu.NewFlatMemory()}
	bus.StoreBytes(0x1000, alphabet)
	c := cpu.New(cpu.NMOS, nil, bus)
	bus.reg = c.Reg
	c.SetPC(0x1000)

	if status := c.Run(); status != cpu.StatusIllegal {
		t.Errorf("run status incorrect. exp: %v, got: %v", cpu.StatusIllegal, status)
	}
	if bus.n != 27 {
		t.Errorf("trap count incorrect. exp: 27, got: %d", bus.n)
	}
	if got := bus.out.String(); got != "ABCDEFGHIJKLMNOPQRSTUVWXYZ\n" {
		t.Errorf("output incorrect: %q", got)
	}
	if c.LastPC != 0x1010 {
		t.Errorf("LastPC incorrect. exp: $1010, got: $%04X", c.LastPC)
	}
}
