// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/toymachine/config"
	"github.com/ezrec/toymachine/console"
	"github.com/ezrec/toymachine/cpu"
	"github.com/ezrec/toymachine/emulator"
)

func main() {
	var machine string
	var cells int
	var verbose bool
	var run bool
	var limit int

	flag.StringVar(&machine, "c", "", ".star machine description to use")
	flag.IntVar(&cells, "m", 0, "Memory cells, overriding the machine description")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&run, "r", false, "Run the program until an error, do not start the console")
	flag.IntVar(&limit, "n", 0, "With -r, stop after this many instructions")

	flag.Parse()

	if flag.NArg() > 1 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	cfg := config.Default()
	cfg.Verbose = verbose
	if len(machine) != 0 {
		err := cfg.Update(machine, nil)
		if err != nil {
			log.Fatalf("%v: %v", machine, err)
		}
	}

	if cells != 0 {
		cfg.MemoryCells = cells
	}

	emu, err := emulator.NewEmulator(cfg)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = verbose

	if flag.NArg() == 1 {
		program := flag.Arg(0)
		inf, err := os.Open(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		defer inf.Close()

		prog, err := cpu.ParseProgram(inf)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}

		err = emu.LoadProgram(prog)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
	}

	if run {
		steps, err := emu.Run(limit)
		fmt.Println(emu.Dump())
		if err != nil {
			log.Printf("%v: halted after %d instructions: %v", os.Args[0], steps, err)
		}
		return
	}

	con := &console.Console{
		Emulator: emu,
		Input:    os.Stdin,
		Output:   os.Stdout,
		Prompt:   term.IsTerminal(int(os.Stdin.Fd())),
	}

	con.Intro()
	err = con.Run()
	if err != nil {
		log.Fatal(err)
	}
}
