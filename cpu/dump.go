// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "fmt"

// MaxDumpLen is the longest string Dump produces.
const MaxDumpLen = 64

// Flag letters, most significant bit first.
const flagLetters = "NV-BDIZC"

// Dump returns the register file and decoded status flags as a single
// line of text. A clear flag is shown as '-'. The CPU is not modified.
func (cpu *CPU) Dump() string {
	return dumpRegisters(cpu.Reg)
}

func dumpRegisters(r *Registers) string {
	var flags [8]byte
	for i := range flags {
		if r.PS.Has(Flags(0x80 >> i)) {
			flags[i] = flagLetters[i]
		} else {
			flags[i] = '-'
		}
	}
	return fmt.Sprintf("PC=$%04X A=$%02X X=$%02X Y=$%02X SP=$%02X PS=$%02X [%s]",
		r.PC, r.A, r.X, r.Y, r.SP, byte(r.PS), string(flags[:]))
}
