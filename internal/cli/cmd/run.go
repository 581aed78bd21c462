package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sync"

	"github.com/smoynes/coder/internal/cli"
	"github.com/smoynes/coder/internal/display"
	"github.com/smoynes/coder/internal/log"
	"github.com/smoynes/coder/internal/tty"
	"github.com/smoynes/coder/internal/vm"
)

// Run is the command that loads a memory image and drives it to
// completion against a real I/O port.
//
//	coder run [-config Config.txt] [-window] program.prgm
func Run() cli.Command {
	return &run{config: "Config.txt"}
}

type run struct {
	debug  bool
	config string
	window bool
}

func (run) Description() string {
	return "run a memory image"
}

func (run) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `run [-config file] [-window] program.prgm

Load a memory image and run it until it halts or faults. By default
I/O goes to the calling terminal; -window opens a graphical display.`)

	return err
}

func (r *run) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.BoolVar(&r.debug, "debug", false, "enable debug logging")
	fs.StringVar(&r.config, "config", "Config.txt", "configuration `file`")
	fs.BoolVar(&r.window, "window", false, "use a windowed display instead of the terminal")

	return fs
}

func (r *run) Run(_ context.Context, args []string, out io.Writer, logger *log.Logger) int {
	if r.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) != 1 {
		logger.Error("run: expected exactly one program")
		_ = r.Usage(out)

		return 1
	}

	cfg, err := loadConfig(r.config, logger)
	if err != nil {
		logger.Error("run: config", "err", err)
		return 1
	}

	port, closePort, err := r.openPort(cfg.Geometry())
	if err != nil {
		logger.Error("run: open port", "err", err)
		return 1
	}

	var once sync.Once
	stop := func() { once.Do(closePort) }
	defer stop()

	machine := vm.New(append(cfg.Options(), vm.WithLogger(logger), vm.WithPort(port))...)

	if err := machine.LoadImage(args[0]); err != nil {
		logger.Error("run: load image", "file", args[0], "err", err)
		return 1
	}

	logger.Info("running", "file", args[0])

	onTick := func() {
		if machine.Status != vm.StatusRunning {
			stop()
			return
		}

		if err := machine.Run(20); err != nil {
			logger.Error("run: step", "err", err)
			stop()
		}
	}

	// VM reads keys synchronously through Port.ReadKey during its INPUT
	// interrupt; onKey exists for ports whose windowing toolkit only
	// offers event callbacks, which neither realization needs here.
	onKey := func(int) {}

	port.ProcessMessages(onTick, onKey)

	logger.Info("halted", "status", machine.Status)

	return 0
}

func (r *run) openPort(geometry vm.Geometry) (vm.Port, func(), error) {
	if r.window {
		d := display.New(geometry)
		return d, func() { _ = d.Close() }, nil
	}

	console, err := tty.NewConsole(geometry)
	if err != nil {
		return nil, nil, err
	}

	return console, func() { _ = console.Close() }, nil
}
