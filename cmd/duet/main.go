// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/emulator"
	duetio "github.com/ezrec/duet/io"
)

func main() {
	var compile string
	var image string
	var write string
	var config string
	var input string
	var output string
	var verbose bool
	var report bool

	flag.StringVar(&compile, "c", "", ".duet file to assemble")
	flag.StringVar(&image, "image", "", "Program image to load")
	flag.StringVar(&write, "w", "", "Write program image, do not execute")
	flag.StringVar(&config, "config", "", ".toml run configuration")
	flag.StringVar(&input, "i", "-", "Tape input")
	flag.StringVar(&output, "o", "-", "Tape output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&report, "r", false, "Report registers on exit")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(image) != 0 {
		log.Fatalf("%v: -c and -image are exclusive", os.Args[0])
	}

	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatal(err)
		}
	}
	defer logger.Sync()

	cfg := &emulator.Config{}
	if len(config) != 0 {
		inf, err := os.Open(config)
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
		cfg, err = emulator.LoadConfig(inf)
		inf.Close()
		if err != nil {
			log.Fatalf("%v: %v", config, err)
		}
	}

	prog := cpu.NewProgram()

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		dec, err := cpu.NewDecoder(256)
		if err != nil {
			log.Fatal(err)
		}

		asm := &cpu.Assembler{Logger: logger, Decoder: dec}
		cfg.Predefine(asm)
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Or load a saved image.
	if len(image) != 0 {
		data, err := os.ReadFile(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		prog, err = cpu.UnmarshalProgram(data)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	if len(write) != 0 {
		data, err := prog.MarshalBinary()
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		err = os.WriteFile(write, data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", write, err)
		}
		return
	}

	tape := &duetio.Tape{}

	if input == "-" {
		tape.Input = os.Stdin
	} else {
		inf, err := os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		tape.Input = inf
	}

	if output == "-" {
		tape.Output = os.Stdout
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		tape.Output = ouf
	}

	m := emulator.NewMachine(prog, tape)
	m.Logger = logger

	err := cfg.Apply(m)
	if err != nil {
		log.Fatalf("%v: %v", config, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = m.Run(ctx, cfg.MaxTicks)
	if errors.Is(err, duetio.ErrChannelClosed) {
		// End of tape input.
		logger.Info("tape closed", zap.Stringer("machine", m))
		err = nil
	}

	if report {
		if rerr := m.Report(os.Stderr, false); rerr != nil {
			log.Print(rerr)
		}
	}

	if err != nil {
		log.Fatal(err)
	}
}
