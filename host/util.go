// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/u6502/cpu"
)

func stringToBool(s string) (bool, error) {
	s = strings.ToLower(s)
	switch s {
	case "0", "false", "off":
		return false, nil
	case "1", "true", "on":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

func enabledString(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

var hexString = "0123456789ABCDEF"

func addrToBuf(addr uint16, b []byte) {
	b[0] = hexString[(addr>>12)&0xf]
	b[1] = hexString[(addr>>8)&0xf]
	b[2] = hexString[(addr>>4)&0xf]
	b[3] = hexString[addr&0xf]
}

func byteToBuf(v byte, b []byte) {
	b[0] = hexString[(v>>4)&0xf]
	b[1] = hexString[v&0xf]
}

func toPrintableChar(v byte) byte {
	switch {
	case v >= 32 && v < 127:
		return v
	case v >= 160 && v < 255:
		return v - 128
	default:
		return '.'
	}
}

// Flag names accepted by the register command.
var flagNames = map[string]cpu.Flags{
	"carry":     cpu.CarryBit,
	"zero":      cpu.ZeroBit,
	"interrupt": cpu.InterruptDisableBit,
	"decimal":   cpu.DecimalBit,
	"overflow":  cpu.OverflowBit,
	"sign":      cpu.SignBit,
}

// Vector names accepted by the vector command.
var vectorNames = map[string]cpu.Vector{
	"nmi":   cpu.VectorNMI,
	"reset": cpu.VectorReset,
	"irq":   cpu.VectorIRQ,
}

// parseNumber converts a number to a 16-bit value. A '$' or '0x' prefix
// selects hexadecimal, as does hexMode for unprefixed numbers.
func parseNumber(s string, hexMode bool) (uint16, error) {
	base := 10
	switch {
	case strings.HasPrefix(s, "$"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	case hexMode:
		base = 16
	}

	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid number '%s'", s)
	}
	return uint16(v), nil
}

// ParseAddress converts a decimal number, or a hexadecimal number with a
// '$' or '0x' prefix, to an address.
func ParseAddress(s string) (uint16, error) {
	return parseNumber(s, false)
}

// registerValue returns a register's value and its width in hex digits.
func registerValue(r *cpu.Registers, name string) (v uint16, digits int, ok bool) {
	switch name {
	case "a":
		return uint16(r.A), 2, true
	case "x":
		return uint16(r.X), 2, true
	case "y":
		return uint16(r.Y), 2, true
	case "sp":
		return uint16(r.SP), 2, true
	case "ps":
		return uint16(r.PS), 2, true
	case ".", "pc":
		return r.PC, 4, true
	}
	return 0, 0, false
}

func setRegister(r *cpu.Registers, name string, v uint16) bool {
	switch name {
	case "a":
		r.A = byte(v)
	case "x":
		r.X = byte(v)
	case "y":
		r.Y = byte(v)
	case "sp":
		r.SP = byte(v)
	case "ps":
		r.RestorePS(byte(v))
	case ".", "pc":
		r.PC = v
	default:
		return false
	}
	return true
}
