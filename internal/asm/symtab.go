package asm

import (
	"fmt"

	"github.com/smoynes/coder/internal/vm"
)

// Config supplies the assembler with the values its built-in symbols are
// bound to: the geometry and memory size the program was assembled for.
// It mirrors the vm's own defaults so a program assembled without an
// explicit config still sees sane {width}/{height}/{memory} bindings.
type Config struct {
	MemorySize int
	Geometry   vm.Geometry
}

// DefaultConfig matches vm.New's zero-option defaults.
func DefaultConfig() Config {
	return Config{
		MemorySize: vm.DefaultMemorySize,
		Geometry: vm.Geometry{
			Width:   vm.DefaultWidth,
			Height:  vm.DefaultHeight,
			LetterW: vm.DefaultLetterW,
			LetterH: vm.DefaultLetterH,
		},
	}
}

// prepopulate seeds the symbol table with the built-in constants every
// program may reference without defining them itself: interrupt numbers,
// configured geometry, the take-no-jump sentinel, and one character
// literal per printable ASCII code plus the non-printable keys a
// terminal or display port may report.
func prepopulate(symbols map[string]int, cfg Config) {
	symbols["{screen}"] = int(vm.InterruptScreen)
	symbols["{input}"] = int(vm.InterruptInput)
	symbols["{timeout}"] = int(vm.InterruptTimeout)

	symbols["{memory}"] = cfg.MemorySize
	symbols["{width}"] = cfg.Geometry.Width
	symbols["{height}"] = cfg.Geometry.Height
	symbols["{letter-w}"] = cfg.Geometry.LetterW
	symbols["{letter-h}"] = cfg.Geometry.LetterH
	symbols["{grid-w}"] = cfg.Geometry.GridWidth()
	symbols["{grid-h}"] = cfg.Geometry.GridHeight()

	// The worked examples write the take-no-jump sentinel with label
	// brackets ("[take-no-jump]") even though it is a built-in constant and
	// so, by the decoration convention, ought to take curly braces. Both
	// spellings are bound so either form of source resolves.
	symbols["{take-no-jump}"] = vm.TakeNoJump
	symbols["[take-no-jump]"] = vm.TakeNoJump

	for c := '!'; c <= '~'; c++ {
		symbols[fmt.Sprintf("(%c)", c)] = int(c)
	}

	symbols["(space)"] = vm.KeySpace
	symbols["(tab)"] = vm.KeyTab
	symbols["(enter)"] = vm.KeyEnter
	symbols["(backspace)"] = vm.KeyBackspace
	symbols["(delete)"] = vm.KeyDelete
}
