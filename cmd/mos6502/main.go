// Command mos6502 is the line-oriented REPL driver for the 6502 emulator in
// package cpu. It owns no emulation logic itself: it populates memory via
// loader.LoadFile, drives cpu.Cpu.Run/Step, and renders whatever the engine
// reports back.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/hejops/mos6502/cpu"
	"github.com/hejops/mos6502/loader"
)

const defaultMemoryDumpLen = 10

func main() {
	os.Exit(run(os.Args))
}

// run builds the machine, handles the top-level -l/-g flags, and drives the
// read-eval-print loop. It returns the process exit code rather than
// calling os.Exit directly, so it stays testable.
func run(args []string) int {
	machine := cpu.New()

	top := &cli.App{
		Name:  "mos6502",
		Usage: "interactive MOS 6502 emulator and debugger",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "load",
				Aliases: []string{"l"},
				Usage:   "pre-load a binary image before entering the REPL",
			},
			&cli.BoolFlag{
				Name:  "g",
				Usage: "launch the GUI frontend (not supported)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Bool("g") {
				fmt.Fprintln(os.Stderr, "GUI frontend is not supported")
				return cli.Exit("", 1)
			}
			if f := c.String("load"); f != "" {
				if err := loadImage(machine, f); err != nil {
					fmt.Fprintln(os.Stderr, err)
					return cli.Exit("", 1)
				}
			}
			repl(machine, os.Stdin)
			return nil
		},
	}

	if err := top.Run(args); err != nil {
		if ec, ok := err.(cli.ExitCoder); ok {
			return ec.ExitCode()
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// repl reads one line at a time from in and re-invokes a separate,
// Action-less cli.App (built once, reused every iteration) with that line's tokens as
// argv. Using a separate app from the top-level one keeps an unrecognized
// REPL command from falling through to the top-level Action and restarting
// the loop recursively.
func repl(machine *cpu.Cpu, in *os.File) {
	lineApp := &cli.App{
		Name:     "mos6502",
		Commands: replCommands(machine),
		CommandNotFound: func(c *cli.Context, cmd string) {
			fmt.Fprintf(os.Stderr, "unrecognized command %q (try \"help\")\n", cmd)
		},
	}

	scanner := bufio.NewScanner(in)
	fmt.Print("mos6502> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Print("mos6502> ")
			continue
		}
		if strings.EqualFold(fields[0], "exit") {
			return
		}
		// commands are recognized case-insensitively; arguments keep
		// whatever case the user typed (filenames, hex digits)
		fields[0] = strings.ToLower(fields[0])
		argv := append([]string{lineApp.Name}, fields...)
		if err := lineApp.Run(argv); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		fmt.Print("mos6502> ")
	}
}

// replCommands builds the command table for every REPL line (the top-level
// invocation only takes flags): load, breakpoint/bkpt, run, debug/db/dbg, memory/mem,
// help, exit (exit is special-cased in repl itself since it must terminate
// the scanner loop rather than return to cli).
func replCommands(machine *cpu.Cpu) []*cli.Command {
	return []*cli.Command{
		{
			Name:      "load",
			Usage:     "load a binary image and set PC to its origin",
			ArgsUsage: "<filename>",
			Action: func(c *cli.Context) error {
				if c.NArg() != 1 {
					return fmt.Errorf("load requires exactly one filename argument")
				}
				return loadImage(machine, c.Args().First())
			},
		},
		{
			Name:      "breakpoint",
			Aliases:   []string{"bkpt"},
			Usage:     "add a breakpoint at $hex",
			ArgsUsage: "$hex",
			Action: func(c *cli.Context) error {
				addr, err := parseHexAddr(c.Args().First())
				if err != nil {
					return err
				}
				machine.AddBreakpoint(addr)
				fmt.Printf("breakpoint set at $%04X\n", addr)
				return nil
			},
		},
		{
			Name:  "run",
			Usage: "execute until halt or error",
			Action: func(c *cli.Context) error {
				reportRun(machine.Run(false, nil))
				return nil
			},
		},
		{
			Name:    "debug",
			Aliases: []string{"db", "dbg"},
			Usage:   "execute honoring breakpoints, with an interactive sub-prompt",
			Action: func(c *cli.Context) error {
				reportRun(machine.RunDebugTUI())
				return nil
			},
		},
		{
			Name:  "exit",
			Usage: "quit the REPL",
			Action: func(c *cli.Context) error {
				// handled directly by repl() before dispatch; this entry
				// exists only so `help` lists it
				return nil
			},
		},
		{
			Name:      "memory",
			Aliases:   []string{"mem"},
			Usage:     "dump memory starting at $hex (default length 10)",
			ArgsUsage: "$hex [len]",
			Action: func(c *cli.Context) error {
				addr, err := parseHexAddr(c.Args().Get(0))
				if err != nil {
					return err
				}
				length := defaultMemoryDumpLen
				if c.Args().Len() >= 2 {
					n, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return fmt.Errorf("bad length %q: %w", c.Args().Get(1), err)
					}
					length = n
				}
				dumpMemory(machine, addr, length)
				return nil
			},
		},
	}
}

// loadImage reads path via loader.LoadFile and installs the result into
// machine, leaving prior state intact on failure.
func loadImage(machine *cpu.Cpu, path string) error {
	origin, payload, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	if err := machine.LoadImage(origin, payload); err != nil {
		return err
	}
	fmt.Printf("loaded %q at $%04X (%d bytes)\n", path, origin, len(payload))
	return nil
}

// reportRun prints the human-readable explanation of a RunOutcome.
func reportRun(outcome cpu.RunOutcome) {
	switch outcome.Status {
	case cpu.RunHalted:
		fmt.Println("halted")
	case cpu.RunUserStopped:
		fmt.Println("stopped")
	case cpu.RunInvalidOpcode:
		fmt.Fprintln(os.Stderr, outcome.Err())
	}
}

// parseHexAddr parses a "$nnnn"-style address, tolerating a missing "$".
// Values wider than 16 bits are rejected with an error rather than clamped
// (the 64 KiB-overrun clamp only applies to dump lengths).
func parseHexAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return 0, fmt.Errorf("missing $hex address")
	}
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("bad address %q: %w", s, err)
	}
	return uint16(n), nil
}

// dumpMemory reproduces the original debugger's column layout: address,
// hex byte, decimal byte, and a printable-ASCII or NUL gutter. A request
// that would overrun the 64 KiB address space is clamped to the top of
// memory with a warning, per the AddressOutOfRange taxonomy.
func dumpMemory(machine *cpu.Cpu, addr uint16, length int) {
	data := machine.Peek(addr, length)
	if len(data) < length {
		fmt.Fprintf(os.Stderr, "warning: dump clamped at top of memory ($FFFF)\n")
	}
	for i, b := range data {
		ch := byte('\x00')
		if b >= 32 && b <= 126 {
			ch = b
		}
		fmt.Printf("$%04X: $%02X   %-3d   %c\n", addr+uint16(i), b, b, ch)
	}
}
