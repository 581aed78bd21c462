package vm

// instr.go defines Operand, the two-cell (address-mode, address-value) tuple
// that most instructions read and write through, and the VM's fetch
// primitives used to decode instructions from the flat cell stream.

import "fmt"

// Operand is a decoded (address-mode, address-value) pair. Reading and
// writing through it resolves the address mode eagerly, as required by the
// fetch/decode/execute contract.
type Operand struct {
	Mode AddrMode
	Addr int
}

func (o Operand) String() string {
	return fmt.Sprintf("%s(%d)", o.Mode, o.Addr)
}

// Read resolves the operand to a value.
func (o Operand) Read(mem Memory) (int, error) {
	switch o.Mode {
	case ModeValue:
		return o.Addr, nil
	case ModeImmediate:
		return mem.Read(o.Addr)
	case ModePointer:
		ptr, err := mem.Read(o.Addr)
		if err != nil {
			return 0, err
		}

		return mem.Read(ptr)
	default:
		return 0, &AddrModeError{Mode: int(o.Mode)}
	}
}

// Write stores a value through the operand. Value mode is read-only and
// always fails with ErrBadAddrMode.
func (o Operand) Write(mem Memory, value int) error {
	switch o.Mode {
	case ModeValue:
		return &AddrModeError{Mode: int(o.Mode)}
	case ModeImmediate:
		return mem.Write(o.Addr, value)
	case ModePointer:
		ptr, err := mem.Read(o.Addr)
		if err != nil {
			return err
		}

		return mem.Write(ptr, value)
	default:
		return &AddrModeError{Mode: int(o.Mode)}
	}
}

// fetchCell reads the cell at PC and advances PC.
func (vm *VM) fetchCell() (int, error) {
	val, err := vm.Mem.Read(vm.PC)
	if err != nil {
		return 0, err
	}

	vm.PC++

	return val, nil
}

// fetchOperand reads a two-cell (mode, address) operand.
func (vm *VM) fetchOperand() (Operand, error) {
	mode, err := vm.fetchCell()
	if err != nil {
		return Operand{}, err
	}

	if mode < int(ModeValue) || mode > int(ModePointer) {
		return Operand{}, &AddrModeError{PC: vm.PC - 1, Mode: mode}
	}

	addr, err := vm.fetchCell()
	if err != nil {
		return Operand{}, err
	}

	return Operand{Mode: AddrMode(mode), Addr: addr}, nil
}

// fetchTest reads a one-cell test code.
func (vm *VM) fetchTest() (TestCode, error) {
	val, err := vm.fetchCell()
	if err != nil {
		return 0, err
	}

	if val < int(TestEQ) || val > int(TestLE) {
		return 0, &TestError{PC: vm.PC - 1, Test: val}
	}

	return TestCode(val), nil
}
