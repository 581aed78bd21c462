package vm

// vm.go defines the virtual machine and assembles it from smaller parts,
// following the teacher's builder-with-functional-options pattern.

import (
	"fmt"

	"github.com/smoynes/coder/internal/log"
)

// Status is the machine's run state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Geometry describes the display's pixel dimensions and character cell
// size. Grid dimensions are derived: Width/LetterW columns by
// Height/LetterH rows.
type Geometry struct {
	Width, Height   int
	LetterW, LetterH int
}

// GridWidth returns the number of character columns.
func (g Geometry) GridWidth() int { return g.Width / g.LetterW }

// GridHeight returns the number of character rows.
func (g Geometry) GridHeight() int { return g.Height / g.LetterH }

// Defaults matching spec.md's configuration table.
const (
	DefaultMemorySize = 200
	DefaultWidth      = 640
	DefaultHeight     = 480
	DefaultLetterW    = 8
	DefaultLetterH    = 8
)

// VM is the simulator: memory, registers, status, and the I/O port it talks
// to.
type VM struct {
	PC               int // Program counter: next cell to fetch.
	SP               int // Stack pointer: next empty cell for a push.
	Status           Status
	InterruptPointer int // Base address of the interrupt vector table.

	Geometry Geometry
	Mem      Memory
	Port     Port

	log *log.Logger
}

// OptionFn configures a VM during construction.
type OptionFn func(*VM)

// WithMemorySize sets the number of memory cells. Default 200.
func WithMemorySize(size int) OptionFn {
	return func(vm *VM) { vm.Mem = NewMemory(size) }
}

// WithProgramCounter sets the initial PC.
func WithProgramCounter(pc int) OptionFn {
	return func(vm *VM) { vm.PC = pc }
}

// WithStackPointer sets the initial SP.
func WithStackPointer(sp int) OptionFn {
	return func(vm *VM) { vm.SP = sp }
}

// WithInterruptPointer sets the base address of the interrupt vector table.
func WithInterruptPointer(addr int) OptionFn {
	return func(vm *VM) { vm.InterruptPointer = addr }
}

// WithGeometry sets the display's pixel and character-cell dimensions.
func WithGeometry(g Geometry) OptionFn {
	return func(vm *VM) { vm.Geometry = g }
}

// WithPort attaches the I/O port the machine dispatches interrupts to.
func WithPort(port Port) OptionFn {
	return func(vm *VM) { vm.Port = port }
}

// WithLogger attaches a logger. Defaults to log.DefaultLogger().
func WithLogger(logger *log.Logger) OptionFn {
	return func(vm *VM) { vm.log = logger }
}

// New creates and initializes a virtual machine, applying every option in
// order. Status starts Idle; LoadImage transitions it to Running.
func New(opts ...OptionFn) *VM {
	vm := &VM{
		Status: StatusIdle,
		Geometry: Geometry{
			Width: DefaultWidth, Height: DefaultHeight,
			LetterW: DefaultLetterW, LetterH: DefaultLetterH,
		},
		Mem: NewMemory(DefaultMemorySize),
		log: log.DefaultLogger(),
	}

	for _, fn := range opts {
		fn(vm)
	}

	return vm
}

func (vm *VM) String() string {
	return fmt.Sprintf("PC: %d SP: %d STATUS: %s INTR: %d", vm.PC, vm.SP, vm.Status, vm.InterruptPointer)
}

// push writes val at SP and advances SP upward.
func (vm *VM) push(val int) error {
	if err := vm.Mem.Write(vm.SP, val); err != nil {
		return err
	}

	vm.SP++

	return nil
}

// pop decrements SP and reads the cell it now points to.
func (vm *VM) pop() (int, error) {
	if vm.SP <= 0 {
		return 0, &StackError{SP: vm.SP}
	}

	vm.SP--

	return vm.Mem.Read(vm.SP)
}

// PutNumber writes a single cell directly, bypassing the instruction cycle.
//
// It exists to document an ambiguity in the reference design rather than to
// serve a purpose: the reference VM defines an equivalent method that is
// never called from production code. It is kept, and tested, rather than
// quietly dropped.
func (vm *VM) PutNumber(addr, val int) error {
	return vm.Mem.Write(addr, val)
}
