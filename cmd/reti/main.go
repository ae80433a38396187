// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"golang.org/x/text/language"

	"github.com/ezrec/reti/cpu"
	"github.com/ezrec/reti/emulator"
	"github.com/ezrec/reti/isa"
	"github.com/ezrec/reti/translate"
)

func main() {
	var osVariant bool
	var radix string
	var isr string
	var data string
	var listing bool
	var breaks string
	var stopOnEntry bool
	var verbose bool
	var lang string
	var codeBase uint

	flag.BoolVar(&osVariant, "os", false, "Use the OS variant instruction set")
	flag.StringVar(&radix, "radix", "dec", "Display radix (dec, hex, bin)")
	flag.StringVar(&isr, "isr", "", "OS variant interrupt service routine")
	flag.StringVar(&data, "data", "", "Memory file loaded into the data segment")
	flag.BoolVar(&listing, "S", false, "Print the assembled listing, do not execute")
	flag.StringVar(&breaks, "b", "", "Comma separated breakpoint lines")
	flag.BoolVar(&stopOnEntry, "e", false, "Stop on entry")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "lang", "", "Message language, as a BCP 47 tag")
	flag.UintVar(&codeBase, "cs", 0, "OS variant EPROM address of the program")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: %v [options] program.reti", os.Args[0], os.Args[0])
	}
	path := flag.Arg(0)

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if len(lang) != 0 {
		tag, err := language.Parse(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
		translate.SetLanguage(tag)
	}

	cfg := emulator.Config{Verbose: verbose}
	if osVariant {
		cfg.Load.Isa.Variant = isa.VARIANT_OS
	}
	if r, ok := isa.ParseRadix(radix); ok {
		cfg.Load.Isa.Radix = r
	} else {
		log.Fatalf("%v: unknown radix", radix)
	}
	cfg.Load.CodeBase = uint32(codeBase)
	cfg.Load.Input = os.Stdin
	cfg.Load.Output = os.Stdout

	emu := emulator.New(cfg, nil)

	if len(data) != 0 {
		_, err := emu.LoadMemory(data)
		if err != nil {
			log.Fatalf("%v: %v", data, err)
		}
	}

	if len(breaks) != 0 {
		var lines []int
		for _, text := range strings.Split(breaks, ",") {
			line, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				log.Fatalf("%v: %v", text, err)
			}
			lines = append(lines, line)
		}
		emu.SetBreakpoints(path, lines)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := emu.Start(ctx, path, isr, stopOnEntry || listing)
	if err != nil {
		log.Fatal(err)
	}

	if listing {
		list(emu)
		return
	}

	for {
		for _, event := range emu.Events() {
			report(emu, event)
		}

		if emu.State() == emulator.STATE_TERMINATED || emu.Reason() == emulator.STOP_PAUSE {
			break
		}

		err = emu.Continue(ctx)
		if err != nil {
			for _, event := range emu.Events() {
				report(emu, event)
			}
			log.Fatal(err)
		}
	}
}

// list prints the decoded program and interrupt service routine.
func list(emu *emulator.Emulator) {
	codec := emu.Codec()
	for _, prog := range []*cpu.Program{emu.Image.Main, emu.Image.Isr} {
		if prog == nil {
			continue
		}
		for index, word := range prog.Codes() {
			line := prog.Line(index)
			fmt.Printf("%4d %08x %-24s ; %d: %s\n", index, uint32(word),
				codec.Decode(word).String(), line, strings.TrimSpace(prog.Text(line)))
		}
	}
}

// report prints an event and the registers at a stop.
func report(emu *emulator.Emulator, event emulator.Event) {
	switch event.Kind {
	case emulator.EVENT_STOPPED:
		fmt.Fprintf(os.Stderr, "%v:%d: %v\n", event.Path, event.Line, event.Reason)
		for _, v := range emu.Variables() {
			fmt.Fprintf(os.Stderr, "% 5s: %s\n", v.Name, v.Text)
		}
	case emulator.EVENT_TERMINATED:
		if event.Err == nil {
			fmt.Fprint(os.Stderr, emu.Cpu().String())
		}
	case emulator.EVENT_BREAKPOINT_VALIDATED:
		fmt.Fprintf(os.Stderr, "%v:%d: breakpoint %d validated\n", event.Path, event.Line, event.Breakpoint.Id)
	}
}
