package vm

// exec.go implements the fetch/decode/execute cycle and the cooperative run
// loop.

import (
	"fmt"
	"os"
	"time"

	"github.com/smoynes/coder/internal/image"
	"github.com/smoynes/coder/internal/log"
)

// Step executes exactly one instruction. On any decode or access fault,
// Status is set to Error before the error is returned.
func (vm *VM) Step() error {
	if vm.Status != StatusRunning {
		return fmt.Errorf("step: status is %s, not running", vm.Status)
	}

	opcodeCell, err := vm.fetchCell()
	if err != nil {
		vm.Status = StatusError
		return err
	}

	op, err := vm.decode(Opcode(opcodeCell))
	if err != nil {
		vm.Status = StatusError
		return err
	}

	if err := op.Execute(vm); err != nil {
		vm.Status = StatusError
		return err
	}

	vm.log.Debug("executed", "op", op.String(), "pc", vm.PC, "sp", vm.SP)

	return nil
}

// Run repeatedly steps while Status is Running and the elapsed wall-clock
// time is under timeoutMs. It returns as soon as a step fails or the
// machine stops running; it does not retry or clear the error itself --
// the caller inspects Status and resumes or not. At least one step runs
// when timeoutMs > 0 and the machine starts Running.
func (vm *VM) Run(timeoutMs int) error {
	if timeoutMs <= 0 {
		return nil
	}

	deadline := time.Now().Add(time.Duration(timeoutMs) * time.Millisecond)

	for vm.Status == StatusRunning {
		if err := vm.Step(); err != nil {
			return err
		}

		if !time.Now().Before(deadline) {
			break
		}
	}

	return nil
}

// LoadImage reads the image at path, writes cells starting at address 0,
// and sets Status to Running.
func (vm *VM) LoadImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	if _, err := image.Load(f, vm.Mem); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	vm.Status = StatusRunning

	vm.log.Info("loaded image", log.String("path", path))

	return nil
}

// SaveImage writes every cell of memory to path as a decimal text stream.
func (vm *VM) SaveImage(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := image.Save(f, vm.Mem); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}
