// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/beevik/term"
	"github.com/beevik/u6502/cpu"
	"github.com/beevik/u6502/host"
)

var (
	cmos   bool
	strict bool
)

func init() {
	flag.BoolVar(&cmos, "cmos", false, "emulate the 65c02")
	flag.BoolVar(&strict, "strict", false, "stop when the stack pointer wraps")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: u6502 [script] ..\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	arch := cpu.NMOS
	if cmos {
		arch = cpu.CMOS
	}

	h := host.New(arch)
	h.SetStrictStack(strict)

	// Run commands contained in command-line files.
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			exitOnError(err)
		}
		h.RunCommands(file, os.Stdout, false)
		file.Close()
	}

	// Break on Ctrl-C.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go handleInterrupt(h, c)

	// Run commands interactively, or from piped input.
	h.RunCommands(os.Stdin, os.Stdout, term.IsTerminal(int(os.Stdin.Fd())))
}

func handleInterrupt(h *host.Host, c chan os.Signal) {
	for {
		<-c
		h.Break()
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}
