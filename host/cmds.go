// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

var cmds *cmd.Tree

func init() {
	root := cmd.NewTree(cmd.TreeDescriptor{Name: "u6502"})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command.",
		Usage:       "help [<command>]",
		Data:        (*Host).cmdHelp,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "annotate",
		Brief: "Annotate an address",
		Description: "Provide a code annotation at a memory address." +
			" When disassembling code at this address, the annotation will" +
			" be displayed.",
		Usage: "annotate <address> <string>",
		Data:  (*Host).cmdAnnotate,
	})

	// Breakpoint commands
	bp := root.AddSubtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		Usage:       "breakpoint list",
		Data:        (*Host).cmdBreakpointList,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address." +
			" The breakpoint starts enabled.",
		Usage: "breakpoint add <address>",
		Data:  (*Host).cmdBreakpointAdd,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
		Data:        (*Host).cmdBreakpointRemove,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		Usage:       "breakpoint enable <address>",
		Data:        (*Host).cmdBreakpointEnable,
	})
	bp.AddCommand(cmd.CommandDescriptor{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint. This" +
			" prevents the breakpoint from being hit when running the" +
			" CPU.",
		Usage: "breakpoint disable <address>",
		Data:  (*Host).cmdBreakpointDisable,
	})

	// Data breakpoint commands
	db := root.AddSubtree(cmd.TreeDescriptor{Name: "databreakpoint", Brief: "Data breakpoint commands"})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List data breakpoints",
		Description: "List all current data breakpoints.",
		Usage:       "databreakpoint list",
		Data:        (*Host).cmdDataBreakpointList,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Add a data breakpoint",
		Description: "Add a new data breakpoint at the specified memory" +
			" address. When the CPU stores data at this address, the " +
			" breakpoint will stop the CPU. Optionally, a byte " +
			" value may be specified, and the CPU will stop only " +
			" when this value is stored. The data breakpoint starts enabled.",
		Usage: "databreakpoint add <address> [<value>]",
		Data:  (*Host).cmdDataBreakpointAdd,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a data breakpoint",
		Description: "Remove a previously added data breakpoint at the specified memory address.",
		Usage:       "databreakpoint remove <address>",
		Data:        (*Host).cmdDataBreakpointRemove,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "enable",
		Brief:       "Enable a data breakpoint",
		Description: "Enable a previously added data breakpoint.",
		Usage:       "databreakpoint enable <address>",
		Data:        (*Host).cmdDataBreakpointEnable,
	})
	db.AddCommand(cmd.CommandDescriptor{
		Name:        "disable",
		Brief:       "Disable a data breakpoint",
		Description: "Disable a previously added data breakpoint.",
		Usage:       "databreakpoint disable <address>",
		Data:        (*Host).cmdDataBreakpointDisable,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble code",
		Description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		Usage: "disassemble [<address>] [<lines>]",
		Data:  (*Host).cmdDisassemble,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "irq",
		Brief: "Raise a maskable interrupt",
		Description: "Raise an IRQ. The request is ignored while the" +
			" interrupt-disable flag is set.",
		Usage: "irq",
		Data:  (*Host).cmdIRQ,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load a binary file",
		Description: "Load the contents of a binary file into the emulated" +
			" system's memory at the specified address. The program counter" +
			" and RESET vector are set to the load address.",
		Usage: "load <filename> <address>",
		Data:  (*Host).cmdLoad,
	})

	// Memory commands
	mem := root.AddSubtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	mem.AddCommand(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		Usage: "memory dump [<address>] [<bytes>]",
		Data:  (*Host).cmdMemoryDump,
	})
	mem.AddCommand(cmd.CommandDescriptor{
		Name:        "set",
		Brief:       "Set memory at address",
		Description: "Set the contents of memory starting from the specified address.",
		Usage:       "memory set <address> <byte> [<byte> ...]",
		Data:        (*Host).cmdMemorySet,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:        "nmi",
		Brief:       "Raise a non-maskable interrupt",
		Description: "Raise an NMI. The CPU always takes it.",
		Usage:       "nmi",
		Data:        (*Host).cmdNMI,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
		Data:        (*Host).cmdQuit,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "register",
		Brief: "View or change register values",
		Description: "When used without arguments, this command displays the current" +
			" contents of the CPU registers. When used with arguments, this" +
			" command changes the value of a register or one of the CPU's status" +
			" flags. Allowed register names include A, X, Y, PC, SP and PS. Allowed" +
			" flag names include carry, zero, interrupt, decimal, overflow and sign.",
		Usage: "register [<name> <value>]",
		Data:  (*Host).cmdRegister,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "reset",
		Brief: "Reset the CPU",
		Description: "Load the program counter from the RESET vector and" +
			" return the status register to its power-on state.",
		Usage: "reset",
		Data:  (*Host).cmdReset,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "run",
		Brief: "Run the CPU",
		Description: "Run the CPU until a breakpoint is hit, the program" +
			" halts, or until the user types Ctrl-C.",
		Usage: "run [<address>]",
		Data:  (*Host).cmdRun,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "script",
		Brief: "Run a Lua script",
		Description: "Run a Lua script. Scripts may read and write memory" +
			" and registers with peek, poke and reg, write program output with" +
			" write, and install call traps with trap(address, function).",
		Usage: "script <filename>",
		Data:  (*Host).cmdScript,
	})
	root.AddCommand(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
		Data:  (*Host).cmdSet,
	})

	// Step commands
	st := root.AddSubtree(cmd.TreeDescriptor{Name: "step", Brief: "Step the debugger"})
	st.AddCommand(cmd.CommandDescriptor{
		Name:  "in",
		Brief: "Step into next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step into the subroutine." +
			" The number of steps may be specified as an option.",
		Usage: "step in [<count>]",
		Data:  (*Host).cmdStepIn,
	})
	st.AddCommand(cmd.CommandDescriptor{
		Name:  "over",
		Brief: "Step over next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step over the subroutine." +
			" The number of steps may be specified as an option.",
		Usage: "step over [<count>]",
		Data:  (*Host).cmdStepOver,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "tick",
		Brief: "Advance the CPU by clock cycles",
		Description: "Advance the CPU by a single clock cycle, or by the" +
			" number of cycles specified. An instruction takes effect on its" +
			" first cycle.",
		Usage: "tick [<count>]",
		Data:  (*Host).cmdTick,
	})

	// Trap commands
	tr := root.AddSubtree(cmd.TreeDescriptor{Name: "trap", Brief: "Call trap commands"})
	tr.AddCommand(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List call traps",
		Description: "List all installed call traps.",
		Usage:       "trap list",
		Data:        (*Host).cmdTrapList,
	})
	tr.AddCommand(cmd.CommandDescriptor{
		Name:  "add",
		Brief: "Install a MOS trap",
		Description: "Install one of the built-in MOS traps by name:" +
			" OSRDCH, OSASCI, OSNEWL, OSWRCH or HALT.",
		Usage: "trap add <name>",
		Data:  (*Host).cmdTrapAdd,
	})
	tr.AddCommand(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a call trap",
		Description: "Remove the call trap installed at an address.",
		Usage:       "trap remove <address>",
		Data:        (*Host).cmdTrapRemove,
	})

	root.AddCommand(cmd.CommandDescriptor{
		Name:  "vector",
		Brief: "View or change the hardware vectors",
		Description: "Display the NMI, RESET and IRQ vectors, or change the" +
			" address stored in one of them.",
		Usage: "vector [<name> [<address>]]",
		Data:  (*Host).cmdVector,
	})

	// Add command shortcuts.
	root.AddShortcut("ba", "breakpoint add")
	root.AddShortcut("br", "breakpoint remove")
	root.AddShortcut("bl", "breakpoint list")
	root.AddShortcut("be", "breakpoint enable")
	root.AddShortcut("bd", "breakpoint disable")
	root.AddShortcut("d", "disassemble")
	root.AddShortcut("dbl", "databreakpoint list")
	root.AddShortcut("dba", "databreakpoint add")
	root.AddShortcut("dbr", "databreakpoint remove")
	root.AddShortcut("dbe", "databreakpoint enable")
	root.AddShortcut("dbd", "databreakpoint disable")
	root.AddShortcut("m", "memory dump")
	root.AddShortcut("ms", "memory set")
	root.AddShortcut("r", "register")
	root.AddShortcut("s", "step over")
	root.AddShortcut("si", "step in")
	root.AddShortcut("t", "tick")
	root.AddShortcut("tl", "trap list")
	root.AddShortcut("?", "help")
	root.AddShortcut(".", "register")

	cmds = root
}
