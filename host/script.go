// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"
)

// RunScript runs a Lua script file. Scripts share one interpreter, so
// traps registered by a script stay active after it returns.
func (s *System) RunScript(filename string) error {
	if err := s.luaState().DoFile(filename); err != nil {
		return errors.Wrapf(err, "running script '%s'", filepath.Base(filename))
	}
	return nil
}

// RunScriptString runs a Lua chunk.
func (s *System) RunScriptString(src string) error {
	if err := s.luaState().DoString(src); err != nil {
		return errors.Wrap(err, "running script")
	}
	return nil
}

func (s *System) luaState() *lua.LState {
	if s.lua != nil {
		return s.lua
	}

	L := lua.NewState()
	for name, fn := range map[string]lua.LGFunction{
		"peek":  s.luaPeek,
		"poke":  s.luaPoke,
		"reg":   s.luaReg,
		"write": s.luaWrite,
		"trap":  s.luaTrap,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	s.lua = L
	return L
}

// peek(addr) returns the byte at addr.
func (s *System) luaPeek(L *lua.LState) int {
	addr := uint16(L.CheckInt(1))
	L.Push(lua.LNumber(s.Read(addr)))
	return 1
}

// poke(addr, v) stores v at addr.
func (s *System) luaPoke(L *lua.LState) int {
	addr := uint16(L.CheckInt(1))
	s.Write(addr, byte(L.CheckInt(2)))
	return 0
}

// reg(name [, value]) returns a register's value after optionally
// changing it.
func (s *System) luaReg(L *lua.LState) int {
	r := s.CPU.Reg
	name := strings.ToLower(L.CheckString(1))
	set := L.GetTop() >= 2
	v := L.OptInt(2, 0)

	var result int
	switch name {
	case "a":
		if set {
			r.A = byte(v)
		}
		result = int(r.A)
	case "x":
		if set {
			r.X = byte(v)
		}
		result = int(r.X)
	case "y":
		if set {
			r.Y = byte(v)
		}
		result = int(r.Y)
	case "sp":
		if set {
			r.SP = byte(v)
		}
		result = int(r.SP)
	case "ps":
		if set {
			r.RestorePS(byte(v))
		}
		result = int(r.PS)
	case "pc":
		if set {
			r.PC = uint16(v)
		}
		result = int(r.PC)
	default:
		L.ArgError(1, fmt.Sprintf("unknown register '%s'", name))
		return 0
	}

	L.Push(lua.LNumber(result))
	return 1
}

// write(str) sends a string to the program output.
func (s *System) luaWrite(L *lua.LState) int {
	if _, err := io.WriteString(s.out, L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// trap(addr, fn [, name]) installs fn as the trap at addr. The function
// receives the calling instruction's address and returns the resume
// address, or 0 to let the call proceed.
func (s *System) luaTrap(L *lua.LState) int {
	addr := uint16(L.CheckInt(1))
	fn := L.CheckFunction(2)
	name := L.OptString(3, fmt.Sprintf("SCRIPT_%04X", addr))

	s.AddTrap(name, addr, func(s *System, source uint16) uint16 {
		err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LNumber(source))
		if err != nil {
			s.fail(errors.Wrapf(err, "trap '%s'", name))
			return 0
		}
		ret := L.Get(-1)
		L.Pop(1)
		return uint16(lua.LVAsNumber(ret))
	})
	return 0
}
