// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The u6502run command loads a binary image into memory and runs it on an
// emulated 6502 with the MOS character I/O traps installed. The program
// stops when it calls or breaks to address $0000.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/beevik/u6502/cpu"
	"github.com/beevik/u6502/disasm"
	"github.com/beevik/u6502/host"
	"golang.org/x/term"
)

var (
	org    = flag.String("org", "$1000", "load and start `address`")
	cmos   = flag.Bool("cmos", false, "emulate the 65c02")
	strict = flag.Bool("strict", false, "stop when the stack pointer wraps")
	trace  = flag.Bool("trace", false, "trace every instruction to stderr")
	list   = flag.Int("list", 0, "disassemble `n` instructions and exit")
)

// Restores the terminal, if it was put into raw mode.
var fixup = func() {}

func init() {
	flag.CommandLine.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: u6502run [options] file.bin\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	arch := cpu.NMOS
	if *cmos {
		arch = cpu.CMOS
	}

	sys := host.NewSystem(arch)
	defer sys.Close()
	sys.CPU.StrictStack = *strict

	addr, err := host.ParseAddress(*org)
	if err != nil {
		exitOnError(err)
	}
	if _, err := sys.Load(flag.Arg(0), addr); err != nil {
		exitOnError(err)
	}
	sys.CPU.SetVector(cpu.VectorReset, addr)
	sys.CPU.Reset()

	if *list > 0 {
		lines, _ := disasm.Block(sys.CPU, addr, *list, 0)
		for _, l := range lines {
			fmt.Println(l)
		}
		return
	}

	// Character input is unbuffered when stdin is a terminal.
	fd := int(os.Stdin.Fd())
	var out io.Writer = os.Stdout
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			exitOnError(err)
		}
		fixup = func() { term.Restore(fd, oldState) }
		out = crlfWriter{os.Stdout}
		sys.SetInput(rawReader{os.Stdin})
	} else {
		sys.SetInput(os.Stdin)
	}
	sys.SetOutput(out)

	var status cpu.Status
	if *trace {
		status = runTrace(sys)
	} else {
		status = sys.Run()
	}
	fixup()

	switch {
	case sys.Err != nil:
		exitOnError(sys.Err)
	case sys.Halted:
		fmt.Fprintln(os.Stderr, sys.CPU.Dump())
		os.Exit(0)
	default:
		fmt.Fprintln(os.Stderr, sys.CPU.Dump())
		exitOnError(fmt.Errorf("%v at $%04X", status, sys.CPU.LastPC))
	}
}

func runTrace(sys *host.System) cpu.Status {
	sys.Halted = false
	for {
		line, _ := disasm.Line(sys.CPU, sys.CPU.Reg.PC, disasm.ShowAll)
		fmt.Fprintln(os.Stderr, line)
		status := sys.CPU.Step()
		if status != cpu.StatusOk || sys.Halted {
			return status
		}
	}
}

// A crlfWriter expands newlines for a terminal in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// A rawReader turns ctrl-D into end of input and ctrl-C into an exit.
type rawReader struct {
	r io.Reader
}

func (r rawReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	for i, c := range p[:n] {
		switch c {
		case 0x03:
			fixup()
			os.Exit(130)
		case 0x04:
			return i, io.EOF
		}
	}
	return n, err
}

func exitOnError(err error) {
	fixup()
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
