package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smoynes/coder/internal/asm"
	"github.com/smoynes/coder/internal/cli"
	"github.com/smoynes/coder/internal/config"
	"github.com/smoynes/coder/internal/log"
)

// Compile is the command that translates assembly source into a memory
// image.
//
//	coder compile [-config Config.txt] [-o program.prgm] program.asm...
func Compile() cli.Command {
	return &compile{config: "Config.txt", output: "a.prgm"}
}

type compile struct {
	debug  bool
	config string
	output string
}

func (compile) Description() string {
	return "assemble source into a memory image"
}

func (compile) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `compile [-config file] [-o file] program.asm...

Assemble one or more source files, in order, into a single memory image.`)

	return err
}

func (c *compile) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging")
	fs.StringVar(&c.config, "config", "Config.txt", "configuration `file`")
	fs.StringVar(&c.output, "o", "a.prgm", "output `filename`")

	return fs
}

func (c *compile) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) int {
	if c.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) == 0 {
		logger.Error("compile: no source files given")
		_ = c.Usage(out)

		return 1
	}

	cfg, err := loadConfig(c.config, logger)
	if err != nil {
		logger.Error("compile: config", "err", err)
		return 1
	}

	mem := memoryForAssembly(cfg)
	asmCfg := asm.Config{MemorySize: cfg.MemorySize(), Geometry: cfg.Geometry()}
	a := asm.NewAssembler(mem, asmCfg)

	for _, fn := range args {
		f, err := os.Open(fn)
		if err != nil {
			logger.Error("compile: open", "file", fn, "err", err)
			return 1
		}

		err = a.Compile(f, fn)
		f.Close()

		if err != nil {
			logger.Error("compile: assemble", "file", fn, "err", err)
			return 1
		}
	}

	out, err := os.Create(c.output)
	if err != nil {
		logger.Error("compile: create output", "file", c.output, "err", err)
		return 1
	}
	defer out.Close()

	if err := saveImage(out, mem); err != nil {
		logger.Error("compile: write image", "file", c.output, "err", err)
		return 1
	}

	logger.Info("compiled",
		"out", c.output,
		"files", strings.Join(args, ", "),
		"cells", a.Pointer(),
	)

	return 0
}
