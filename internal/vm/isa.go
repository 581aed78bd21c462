package vm

// isa.go is the single declaration of the instruction set: opcodes, address
// modes, test codes and interrupt numbers. Both the assembler and the
// simulator import this file rather than keep their own copies, so the
// on-disk encoding and the execution loop can never drift apart.

import "fmt"

// Opcode identifies the operation of an instruction. It occupies the first
// cell of every instruction.
type Opcode int

// The full instruction set. Values match the numeric encoding in the
// assembled image exactly; do not renumber without updating both the
// assembler's emitter and the simulator's decoder.
const (
	OpCopy Opcode = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpTest
	OpJump
	OpJsub
	OpPush
	OpPop
	OpReturn
	OpAnd
	OpOr
	OpHalt
	OpInterrupt
)

func (op Opcode) String() string {
	if info, ok := OpcodeTable[op]; ok {
		return info.Mnemonic
	}

	return fmt.Sprintf("opcode(%d)", int(op))
}

// OperandKind describes the shape of one operand slot following an opcode
// cell, for the purpose of counting and emitting cells. It does not by
// itself say how the simulator decodes the slot -- see the per-opcode
// operation types in ops.go for that.
type OperandKind int

const (
	// OperandAddress is a two-cell operand: an address-mode tag followed by
	// an address value.
	OperandAddress OperandKind = iota

	// OperandTest is a one-cell test-code operand.
	OperandTest

	// OperandRaw is a one-cell literal value: a jump target, a branch
	// target, an interrupt number, or a plain number.
	OperandRaw
)

// OpcodeInfo documents the mnemonic and operand layout of an opcode. It is
// the contract the assembler emits against; the simulator's decoder in
// ops.go reads the same layout, one operation type per opcode.
type OpcodeInfo struct {
	Mnemonic string
	Operands []OperandKind
}

// OpcodeTable is the shared source of truth for instruction shape, indexed
// by opcode.
var OpcodeTable = map[Opcode]OpcodeInfo{
	OpCopy:      {"copy", []OperandKind{OperandAddress, OperandAddress}},
	OpAdd:       {"add", []OperandKind{OperandAddress, OperandAddress, OperandAddress}},
	OpSub:       {"sub", []OperandKind{OperandAddress, OperandAddress, OperandAddress}},
	OpMul:       {"mul", []OperandKind{OperandAddress, OperandAddress, OperandAddress}},
	OpDiv:       {"div", []OperandKind{OperandAddress, OperandAddress, OperandAddress}},
	OpTest:      {"test", []OperandKind{OperandAddress, OperandTest, OperandAddress, OperandRaw, OperandRaw}},
	OpJump:      {"jump", []OperandKind{OperandRaw}},
	OpJsub:      {"jsub", []OperandKind{OperandAddress}},
	OpPush:      {"push", []OperandKind{OperandAddress}},
	OpPop:       {"pop", []OperandKind{OperandAddress}},
	OpReturn:    {"return", nil},
	OpAnd:       {"and", []OperandKind{OperandAddress, OperandAddress, OperandAddress}},
	OpOr:        {"or", []OperandKind{OperandAddress, OperandAddress, OperandAddress}},
	OpHalt:      {"halt", nil},
	OpInterrupt: {"interrupt", []OperandKind{OperandRaw}},
}

// Mnemonics maps an instruction's textual name back to its opcode, for the
// assembler's token dispatch.
var Mnemonics = func() map[string]Opcode {
	m := make(map[string]Opcode, len(OpcodeTable))
	for op, info := range OpcodeTable {
		m[info.Mnemonic] = op
	}

	return m
}()

// AddrMode selects how an operand's address cell is interpreted.
type AddrMode int

const (
	// ModeValue means the address cell IS the literal value. Read-only: it
	// is an error to use it as a write target.
	ModeValue AddrMode = iota

	// ModeImmediate means the address cell is a memory index; the operand
	// reads or writes that cell directly.
	ModeImmediate

	// ModePointer means the address cell holds the address of a cell that
	// contains the effective address.
	ModePointer
)

func (m AddrMode) String() string {
	switch m {
	case ModeValue:
		return "value"
	case ModeImmediate:
		return "immediate"
	case ModePointer:
		return "pointer"
	default:
		return fmt.Sprintf("addrmode(%d)", int(m))
	}
}

// TestCode names a comparison performed by the test instruction.
type TestCode int

const (
	TestEQ TestCode = iota
	TestNE
	TestGT
	TestLT
	TestGE
	TestLE
)

func (t TestCode) String() string {
	switch t {
	case TestEQ:
		return "="
	case TestNE:
		return "not"
	case TestGT:
		return ">"
	case TestLT:
		return "<"
	case TestGE:
		return ">or="
	case TestLE:
		return "<or="
	default:
		return fmt.Sprintf("test(%d)", int(t))
	}
}

// Interrupt identifies one of the machine's three interrupt sources.
type Interrupt int

const (
	InterruptScreen Interrupt = iota
	InterruptInput
	InterruptTimeout
)

func (i Interrupt) String() string {
	switch i {
	case InterruptScreen:
		return "screen"
	case InterruptInput:
		return "input"
	case InterruptTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("interrupt(%d)", int(i))
	}
}

// TakeNoJump is the reserved pass/fail target meaning "fall through"; it is
// not a legal memory index since every valid program address is >= 0.
const TakeNoJump = -1
