// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm formats 6502 disassembly listings. Each line shows the
// address, the raw instruction bytes and the decoded instruction, and may
// be followed by the CPU's register state and cycle count.
package disasm

import (
	"fmt"

	"github.com/beevik/u6502/cpu"
)

// Flags select the optional columns of a listing line.
type Flags uint8

// Listing options
const (
	ShowRegisters Flags = 1 << iota // append the CPU register dump
	ShowCycles                      // append the CPU cycle counter
	Compact                         // use narrower columns

	ShowAll = ShowRegisters | ShowCycles
)

// Return the instruction bytes as space-separated hex pairs.
func codeString(b []byte) string {
	switch len(b) {
	case 1:
		return fmt.Sprintf("%02X", b[0])
	case 2:
		return fmt.Sprintf("%02X %02X", b[0], b[1])
	case 3:
		return fmt.Sprintf("%02X %02X %02X", b[0], b[1], b[2])
	default:
		return ""
	}
}

// Line disassembles the instruction at addr and returns the formatted
// listing line along with the address of the following instruction.
// Memory is read through the CPU's read handler.
func Line(c *cpu.CPU, addr uint16, flags Flags) (line string, next uint16) {
	text, n := c.Disassemble(addr)
	next = addr + uint16(n)

	read := c.ReadHandler()
	var buf [3]byte
	b := buf[:n]
	for i := range b {
		b[i] = read(addr + uint16(i))
	}

	if flags&Compact != 0 {
		line = fmt.Sprintf("%04X- %-8s  %-11s", addr, codeString(b), text)
	} else {
		line = fmt.Sprintf("%04X-   %-8s    %-15s", addr, codeString(b), text)
	}

	if flags&ShowRegisters != 0 {
		line += " " + c.Dump()
	}
	if flags&ShowCycles != 0 {
		line += fmt.Sprintf(" C=%d", c.Cycles)
	}
	return line, next
}

// Block disassembles count consecutive instructions starting at addr. It
// returns the listing lines and the address following the last one.
func Block(c *cpu.CPU, addr uint16, count int, flags Flags) (lines []string, next uint16) {
	lines = make([]string, 0, count)
	for i := 0; i < count; i++ {
		var line string
		line, addr = Line(c, addr, flags)
		lines = append(lines, line)
	}
	return lines, addr
}
