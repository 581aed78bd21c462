/*
Package vm implements the Coder virtual machine: a flat-memory stack
computer with a single address space, no registers beyond PC and SP, and a
three-source interrupt controller.

# Memory #

Memory is a single, flat array of N signed integer cells, indexed [0, N).
There is no distinction between code, data and stack regions other than by
convention established by the program or its configuration. Every access is
bounds-checked.

# Instructions #

Every instruction is a run of cells: an opcode followed by a fixed number of
operand cells, determined by the opcode (see isa.go, the shared source of
truth the assembler emits against). Most operands are two cells: an
address-mode tag and an address value. The address mode decides how the
address value is resolved:

  - value:     the cell IS the literal value; read-only.
  - immediate: the cell is a memory index; read or write that cell.
  - pointer:   the cell holds the address of the cell to read or write.

# Interrupts #

A program raises one of three interrupts with the "interrupt" instruction:
screen (rasterize a character grid through the I/O port), input (poll one
key), and timeout (sleep for a delay). Each is resolved through one level of
indirection in a configurable interrupt vector table: interrupt k's handler
data lives at memory[interrupt_pointer + k].

# Execution #

Step fetches, decodes and executes exactly one instruction. Run steps
repeatedly until the machine stops running or a wall-clock budget is spent;
it is the program's only suspension point and it is entirely cooperative --
nothing preempts a Step in progress.
*/
package vm
