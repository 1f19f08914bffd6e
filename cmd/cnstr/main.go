// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/cnstr/config"
	"github.com/ezrec/cnstr/emulator"
	"github.com/ezrec/cnstr/internal"
)

const BANNER = "********************"

// presets collects repeated -D reg=expr flags.
type presets map[string]string

func (p presets) String() string {
	var defs []string
	for reg, expr := range internal.IterSorted(p) {
		defs = append(defs, reg+"="+expr)
	}
	return strings.Join(defs, ",")
}

func (p presets) Set(def string) error {
	reg, expr, ok := strings.Cut(def, "=")
	if !ok || len(reg) == 0 {
		return fmt.Errorf("expected reg=expr, got '%v'", def)
	}
	p[reg] = expr
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("cnstr: ")

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { stdout.Flush() })

	atexit.Exit(run(os.Args[1:], os.Stdin, stdout))
}

// run executes the command line, and returns the process exit status.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	var configPath string
	var verbose bool
	var quiet bool
	defines := presets{}

	flags := flag.NewFlagSet("cnstr", flag.ContinueOnError)
	flags.StringVar(&configPath, "c", "", "cnstr.toml configuration to use")
	flags.BoolVar(&verbose, "v", false, "Verbose mode")
	flags.BoolVar(&quiet, "q", false, "Quiet mode; no banner, no final dump")
	flags.Var(defines, "D", "Preset a register, as reg=expr (repeatable)")

	err := flags.Parse(args)
	if err != nil {
		return 2
	}

	source := "source.txt"
	switch flags.NArg() {
	case 0:
	case 1:
		source = flags.Arg(0)
	default:
		log.Printf("Unknown arguments: %v", flags.Args()[1:])
		return 2
	}

	var conf *config.Config
	if len(configPath) != 0 {
		conf, err = config.Load(configPath)
	} else {
		var cwd string
		cwd, err = os.Getwd()
		if err == nil {
			conf, err = config.FindAndLoad(cwd)
		}
	}
	if err != nil {
		log.Printf("%v", err)
		return 1
	}

	if verbose {
		conf.Verbose = true
		if len(conf.Path) != 0 {
			log.Printf("config: %v", conf.Path)
		}
	}
	if quiet {
		conf.Banner = false
		conf.Dump = false
	}

	emu := emulator.NewEmulator(stdout)
	emu.Verbose = conf.Verbose
	emu.Lexer.CommentPrefix = conf.CommentPrefix

	for reg, expr := range internal.IterSorted(conf.Registers) {
		if _, ok := defines[reg]; ok {
			continue
		}
		defines[reg] = expr
	}
	for reg, expr := range internal.IterSorted(defines) {
		err = emu.Predefine(reg, expr)
		if err != nil {
			log.Printf("%v", err)
			return 1
		}
	}

	input := stdin
	if source != "-" {
		inf, err := os.Open(source)
		if err != nil {
			log.Printf("%v", err)
			return 1
		}
		defer inf.Close()
		input = inf
	}

	err = emu.Load(input)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	if conf.Banner {
		fmt.Fprintln(stdout, BANNER)
	}

	err = emu.Run()
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}

	if conf.Banner {
		fmt.Fprintln(stdout, BANNER)
	}

	if conf.Dump {
		err = emu.Dump(stdout)
		if err != nil {
			log.Printf("%v", err)
			return 1
		}
	}

	return 0
}
