// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/beevik/u6502/cpu"
)

// Operating system entry points emulated by the MOS traps.
const (
	OSRDCH uint16 = 0xffe0 // read a character into A
	OSASCI uint16 = 0xffe3 // write A, translating CR to newline
	OSNEWL uint16 = 0xffe7 // write a newline
	OSWRCH uint16 = 0xffee // write A
	HALT   uint16 = 0x0000 // stop the system
)

// Length of the JSR instruction that reaches a trap.
const jsrLength = 3

var mosTraps = []Trap{
	{Name: "OSRDCH", Addr: OSRDCH, Fn: osrdch},
	{Name: "OSASCI", Addr: OSASCI, Fn: osasci},
	{Name: "OSNEWL", Addr: OSNEWL, Fn: osnewl},
	{Name: "OSWRCH", Addr: OSWRCH, Fn: oswrch},
	{Name: "HALT", Addr: HALT, Fn: halt},
}

var mosTree = prefixtree.New[*Trap]()

func init() {
	for i := range mosTraps {
		mosTree.Add(strings.ToLower(mosTraps[i].Name), &mosTraps[i])
	}
}

// LookupMOS finds a MOS trap by name. Any unambiguous prefix of the name
// is accepted.
func LookupMOS(name string) (*Trap, error) {
	return mosTree.FindValue(strings.ToLower(name))
}

// InstallMOS installs the MOS traps. Addresses that already have a trap
// keep it.
func (s *System) InstallMOS() {
	for _, t := range mosTraps {
		if s.traps[t.Addr] == nil {
			s.AddTrap(t.Name, t.Addr, t.Fn)
		}
	}
}

// RemoveMOS removes every MOS trap that has not been replaced by another
// trap at the same address.
func (s *System) RemoveMOS() {
	for _, t := range mosTraps {
		if cur := s.traps[t.Addr]; cur != nil && cur.Name == t.Name {
			s.RemoveTrap(t.Addr)
		}
	}
}

func (s *System) writeByte(v byte) {
	if _, err := s.out.Write([]byte{v}); err != nil {
		s.fail(err)
	}
}

func oswrch(s *System, source uint16) uint16 {
	s.writeByte(s.CPU.Reg.A)
	return source + jsrLength
}

func osasci(s *System, source uint16) uint16 {
	if s.CPU.Reg.A == '\r' {
		s.writeByte('\n')
	} else {
		s.writeByte(s.CPU.Reg.A)
	}
	return source + jsrLength
}

func osnewl(s *System, source uint16) uint16 {
	s.writeByte('\n')
	return source + jsrLength
}

// The carry flag reports end of input.
func osrdch(s *System, source uint16) uint16 {
	v, err := s.in.ReadByte()
	if err != nil {
		s.CPU.Reg.A = 0
		s.CPU.Reg.PS.Set(cpu.CarryBit, true)
	} else {
		s.CPU.Reg.A = v
		s.CPU.Reg.PS.Set(cpu.CarryBit, false)
	}
	return source + jsrLength
}

// The zero return leaves a BRK unhandled, so the CPU stops with
// StatusIllegal. A JSR to $0000 is stopped by the Halted flag instead.
func halt(s *System, source uint16) uint16 {
	s.Halted = true
	return 0
}
