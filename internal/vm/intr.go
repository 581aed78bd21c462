package vm

// intr.go implements interrupt dispatch: the three interrupt sources the
// "interrupt" instruction can raise, each resolved through one level of
// indirection in the interrupt vector table.

import "fmt"

// dispatchInterrupt looks up the vector for interrupt number k and invokes
// the matching handler.
func (vm *VM) dispatchInterrupt(k int) error {
	if k < int(InterruptScreen) || k > int(InterruptTimeout) {
		return &InterruptError{PC: vm.PC, Interrupt: k}
	}

	vec, err := vm.Mem.Read(vm.InterruptPointer + k)
	if err != nil {
		return err
	}

	switch Interrupt(k) {
	case InterruptScreen:
		return vm.serviceScreen(vec)
	case InterruptInput:
		return vm.serviceInput(vec)
	case InterruptTimeout:
		return vm.serviceTimeout(vec)
	default:
		return &InterruptError{PC: vm.PC, Interrupt: k}
	}
}

// serviceInput requests one key from the port and writes its code into the
// vector cell. A "no key" reading is written through unchanged.
func (vm *VM) serviceInput(vec int) error {
	code := NoKey
	if vm.Port != nil {
		code = vm.Port.ReadKey()
	}

	return vm.Mem.Write(vec, code)
}

// serviceScreen rasterizes the character grid starting at vec: grid_w
// columns by grid_h rows, row-major, one OutputText call per cell, followed
// by a single Refresh.
func (vm *VM) serviceScreen(vec int) error {
	if vm.Port == nil {
		return fmt.Errorf("vm: screen interrupt with no port attached")
	}

	gridW, gridH := vm.Geometry.GridWidth(), vm.Geometry.GridHeight()

	if err := vm.Port.Color(ColorWhite); err != nil {
		return err
	}

	for y := 0; y < gridH; y++ {
		for x := 0; x < gridW; x++ {
			cell, err := vm.Mem.Read(vec + y*gridW + x)
			if err != nil {
				return err
			}

			char := string(rune(cell & 0xff))

			if err := vm.Port.OutputText(char, x*vm.Geometry.LetterW, y*vm.Geometry.LetterH, ColorBlue); err != nil {
				return err
			}
		}
	}

	return vm.Port.Refresh()
}

// serviceTimeout reads a millisecond delay from the vector cell and asks
// the port to sleep for it.
func (vm *VM) serviceTimeout(vec int) error {
	delay, err := vm.Mem.Read(vec)
	if err != nil {
		return err
	}

	if vm.Port != nil {
		vm.Port.Timeout(delay)
	}

	return nil
}
