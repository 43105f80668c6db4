// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/u6502/cpu"
	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// Errors returned when loading a memory image.
var (
	ErrEmptyImage    = errors.New("image is empty")
	ErrImageTooLarge = errors.New("image does not fit in memory")
)

// A TrapFunc emulates a routine reached by a subroutine call. Source is the
// address of the calling instruction. A non-zero return value is the
// address at which execution resumes; zero lets the call proceed.
type TrapFunc func(s *System, source uint16) uint16

// A Trap binds a TrapFunc to an entry point address.
type Trap struct {
	Name string
	Addr uint16
	Fn   TrapFunc
}

// A System is a 6502 CPU attached to 64K of RAM through a bus that
// dispatches call traps. It implements cpu.Bus.
type System struct {
	CPU    *cpu.CPU
	Mem    *cpu.FlatMemory
	Halted bool  // control reached the halt address
	Err    error // the last trap failure, which also halts the system

	in    *bufio.Reader
	out   io.Writer
	traps map[uint16]*Trap
	lua   *lua.LState
}

// NewSystem creates a system with the requested CPU architecture. The MOS
// traps are installed, program input is empty and program output is
// discarded until SetInput and SetOutput are called.
func NewSystem(arch cpu.Architecture) *System {
	s := &System{
		Mem:   cpu.NewFlatMemory(),
		in:    bufio.NewReader(strings.NewReader("")),
		out:   io.Discard,
		traps: make(map[uint16]*Trap),
	}
	s.CPU = cpu.New(arch, nil, s)
	s.InstallMOS()
	return s
}

// Close releases the CPU and any script state.
func (s *System) Close() {
	if s.lua != nil {
		s.lua.Close()
		s.lua = nil
	}
	s.CPU.Close()
}

// SetInput sets the reader that supplies the program's character input.
func (s *System) SetInput(r io.Reader) {
	s.in = bufio.NewReader(r)
}

// SetOutput sets the writer that receives the program's character output.
func (s *System) SetOutput(w io.Writer) {
	s.out = w
}

// Read returns the byte at the address.
func (s *System) Read(addr uint16) byte {
	return s.Mem.Read(addr)
}

// Write stores a byte at the address.
func (s *System) Write(addr uint16, v byte) {
	s.Mem.Write(addr, v)
}

// Call dispatches a subroutine call to the trap installed at addr, if any.
func (s *System) Call(addr, source uint16) uint16 {
	if t, ok := s.traps[addr]; ok {
		return t.Fn(s, source)
	}
	return 0
}

// AddTrap installs a trap at addr, replacing any trap already there.
func (s *System) AddTrap(name string, addr uint16, fn TrapFunc) *Trap {
	t := &Trap{Name: name, Addr: addr, Fn: fn}
	s.traps[addr] = t
	return t
}

// RemoveTrap removes the trap at addr. It returns false if there was none.
func (s *System) RemoveTrap(addr uint16) bool {
	if _, ok := s.traps[addr]; !ok {
		return false
	}
	delete(s.traps, addr)
	return true
}

// GetTrap returns the trap installed at addr, or nil.
func (s *System) GetTrap(addr uint16) *Trap {
	return s.traps[addr]
}

// Traps returns all installed traps ordered by address.
func (s *System) Traps() []*Trap {
	traps := make([]*Trap, 0, len(s.traps))
	for _, t := range s.traps {
		traps = append(traps, t)
	}
	sort.Slice(traps, func(i, j int) bool {
		return traps[i].Addr < traps[j].Addr
	})
	return traps
}

// Run executes instructions until the program halts or the CPU reports a
// status other than StatusOk.
func (s *System) Run() cpu.Status {
	s.Halted = false
	for {
		status := s.CPU.Step()
		if status != cpu.StatusOk || s.Halted {
			return status
		}
	}
}

// Load copies the contents of a binary image file into memory at addr and
// returns the address of the last byte loaded.
func (s *System) Load(filename string, addr uint16) (end uint16, err error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return 0, errors.Wrapf(err, "loading '%s'", filepath.Base(filename))
	}
	return s.LoadBytes(filepath.Base(filename), addr, b)
}

// LoadBytes copies an image into memory at addr and returns the address of
// the last byte loaded. The name is used only in error messages.
func (s *System) LoadBytes(name string, addr uint16, b []byte) (end uint16, err error) {
	switch {
	case len(b) == 0:
		return 0, errors.Wrapf(ErrEmptyImage, "loading '%s'", name)
	case int(addr)+len(b) > 0x10000:
		return 0, errors.Wrapf(ErrImageTooLarge, "loading '%s' (%d bytes) at $%04X", name, len(b), addr)
	}
	s.Mem.StoreBytes(addr, b)
	return addr + uint16(len(b)-1), nil
}

// Record a trap failure and stop the system.
func (s *System) fail(err error) {
	s.Err = err
	s.Halted = true
}
