// Termtest is a testing tool for Unix terminal I/O. Lacking simple PTY support, running this tool
// manually is easier than writing automated tests.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/smoynes/coder/internal/log"
	"github.com/smoynes/coder/internal/tty"
	"github.com/smoynes/coder/internal/vm"
)

var logger = log.DefaultLogger()

func main() {
	console, err := tty.NewConsole(vm.Geometry{
		Width: vm.DefaultWidth, Height: vm.DefaultHeight,
		LetterW: vm.DefaultLetterW, LetterH: vm.DefaultLetterH,
	})
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer console.Close()

	logger.Info("Polling keyboard. Type keys; ESC to quit.")

	row := 0
	timeout := time.After(30 * time.Second)

	for {
		select {
		case <-timeout:
			return
		default:
		}

		key := console.ReadKey()

		if key == 27 { // ESC
			return
		}

		if key != vm.NoKey {
			row += vm.DefaultLetterH
			_ = console.OutputText(fmt.Sprintf("key: %d", key), 0, row, vm.ColorWhite)
		}

		console.Timeout(20)
	}
}
