package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/smoynes/coder/internal/vm"
)

func assemble(tt *testing.T, source string) (*Assembler, vm.Memory) {
	tt.Helper()

	mem := vm.NewMemory(64)
	a := NewAssembler(mem, Config{MemorySize: 64, Geometry: vm.Geometry{Width: 640, Height: 480, LetterW: 8, LetterH: 8}})

	if err := a.Compile(strings.NewReader(source), "test.asm"); err != nil {
		tt.Fatalf("compile: %v", err)
	}

	return a, mem
}

// runToHalt drives a VM over mem -- the same memory an Assembler just
// wrote into -- from cell 0 until it halts. The tests below that call it
// check memory as it stands after the assembled program runs to halt, not
// the state left by assembly alone.
func runToHalt(tt *testing.T, mem vm.Memory) *vm.VM {
	tt.Helper()

	// SP starts at the top of memory, away from every cell the scenarios
	// below address directly, so a subroutine call's single push/pop
	// doesn't clobber program or data cells.
	machine := vm.New(vm.WithStackPointer(mem.Size() - 1))
	machine.Mem = mem
	machine.Status = vm.StatusRunning

	for i := 0; machine.Status == vm.StatusRunning; i++ {
		if i > 10_000 {
			tt.Fatalf("program did not halt within %d steps", i)
		}

		if err := machine.Step(); err != nil {
			tt.Fatalf("step: %v", err)
		}
	}

	return machine
}

// The program itself occupies cells 0..17, so its data cells start at 40,
// where the copies cannot overwrite an instruction still to be executed.
func TestScenario_AddTwoLiterals(tt *testing.T) {
	_, mem := assemble(tt, `
:copy $5 #40
:copy $7 #41
:add #40 #41 #42
:halt
`)

	runToHalt(tt, mem)

	cases := map[int]int{40: 5, 41: 7, 42: 12}
	for addr, want := range cases {
		got, _ := mem.Read(addr)
		if got != want {
			tt.Errorf("memory[%d] = %d, want %d", addr, got, want)
		}
	}
}

// The program occupies cells 0..24; its data cells are 40 and 41.
func TestScenario_ForwardLabelAndConditionalJump(tt *testing.T) {
	_, mem := assemble(tt, `
:copy $1 #40
:test #40 = $1 [then] [take-no-jump]
:copy $0 #41
:halt
:label then
:copy $99 #41
:halt
`)

	runToHalt(tt, mem)

	got, _ := mem.Read(41)
	if got != 99 {
		tt.Errorf("memory[41] = %d, want 99", got)
	}
}

func TestScenario_SubroutineWithStack(tt *testing.T) {
	_, mem := assemble(tt, `
:jsub $[sub]
:halt
:label sub
:copy $42 #30
:return
`)

	runToHalt(tt, mem)

	got, _ := mem.Read(30)
	if got != 42 {
		tt.Errorf("memory[30] = %d, want 42", got)
	}
}

func TestScenario_PointerIndirection(tt *testing.T) {
	_, mem := assemble(tt, `
:copy $50 #40
:copy $7 @40
:halt
`)

	runToHalt(tt, mem)

	got, _ := mem.Read(50)
	if got != 7 {
		tt.Errorf("memory[50] = %d, want 7", got)
	}
}

func TestScenario_DivideByZeroIsSafe(tt *testing.T) {
	_, mem := assemble(tt, `
:div $9 $0 #60
:halt
`)

	runToHalt(tt, mem)

	got, _ := mem.Read(60)
	if got != 9 {
		tt.Errorf("memory[60] = %d, want 9", got)
	}
}

// TestCompileThenExecute assembles source built from several directives
// and instructions, including a forward reference and a defined
// constant, then runs the resulting image to halt and checks memory
// only after the machine stops.
func TestCompileThenExecute(tt *testing.T) {
	_, mem := assemble(tt, `
:define step as 3
:copy $[step] #30
:add #30 $[step] #31
:jump [skip]
:copy $999 #31
:label skip
:halt
`)

	runToHalt(tt, mem)

	got, _ := mem.Read(30)
	if got != 3 {
		tt.Errorf("memory[30] = %d, want 3", got)
	}

	got, _ = mem.Read(31)
	if got != 6 {
		tt.Errorf("memory[31] = %d, want 6 (jump over the 999 write)", got)
	}
}

func TestScenario_StringEmission(tt *testing.T) {
	a, mem := assemble(tt, `
:label s
:string "Hi"
:halt
`)

	s, ok := a.Symbols()["[s]"]
	if !ok {
		tt.Fatal("label [s] not in symbol table")
	}

	length, _ := mem.Read(s)
	if length != 2 {
		tt.Errorf("memory[s] = %d, want 2", length)
	}

	h, _ := mem.Read(s + 1)
	if h != 'H' {
		tt.Errorf("memory[s+1] = %d, want %d ('H')", h, int('H'))
	}

	i, _ := mem.Read(s + 2)
	if i != 'i' {
		tt.Errorf("memory[s+2] = %d, want %d ('i')", i, int('i'))
	}
}

func TestCommentLinesAreDropped(tt *testing.T) {
	_, mem := assemble(tt, `
this is not assembly
:halt
also not assembly
`)

	got, _ := mem.Read(0)
	if got != int(vm.OpHalt) {
		tt.Errorf("memory[0] = %d, want halt opcode", got)
	}
}

func TestColonOnlyLineIsLegal(tt *testing.T) {
	_, mem := assemble(tt, `
:
:halt
`)

	got, _ := mem.Read(0)
	if got != int(vm.OpHalt) {
		tt.Errorf("memory[0] = %d, want halt opcode", got)
	}
}

func TestDefine(tt *testing.T) {
	a, mem := assemble(tt, `
:define limit as 10
:copy $[limit] #20
:halt
`)

	if a.Symbols()["[limit]"] != 10 {
		tt.Errorf("symbol [limit] = %d, want 10", a.Symbols()["[limit]"])
	}

	runToHalt(tt, mem)

	got, _ := mem.Read(20)
	if got != 10 {
		tt.Errorf("memory[20] = %d, want 10", got)
	}
}

func TestList_ReservesWithoutEmitting(tt *testing.T) {
	a, _ := assemble(tt, `
:list 4
:halt
`)

	if a.Pointer() != 5 {
		tt.Errorf("pointer = %d, want 5 (4 reserved + 1 halt)", a.Pointer())
	}
}

func TestObjects_ReservesProductOfDimensions(tt *testing.T) {
	a, _ := assemble(tt, `
:objects 2x3x4
:halt
`)

	if a.Pointer() != 25 {
		tt.Errorf("pointer = %d, want 25 (24 reserved + 1 halt)", a.Pointer())
	}
}

func TestObject_DefinesPropertyIndices(tt *testing.T) {
	a, _ := assemble(tt, `
:object sprite x y vx vy end
:halt
`)

	want := map[string]int{
		"[sprite->x]":  0,
		"[sprite->y]":  1,
		"[sprite->vx]": 2,
		"[sprite->vy]": 3,
	}

	for name, idx := range want {
		if a.Symbols()[name] != idx {
			tt.Errorf("symbol %s = %d, want %d", name, a.Symbols()[name], idx)
		}
	}
}

func TestMap_DefinesElementIndices(tt *testing.T) {
	a, _ := assemble(tt, `
:map red green blue end
:halt
`)

	want := map[string]int{"[red]": 0, "[green]": 1, "[blue]": 2}
	for name, idx := range want {
		if a.Symbols()[name] != idx {
			tt.Errorf("symbol %s = %d, want %d", name, a.Symbols()[name], idx)
		}
	}
}

func TestRelabelingTakesLastDefinition(tt *testing.T) {
	a, _ := assemble(tt, `
:label here
:halt
:label here
:halt
`)

	if a.Symbols()["[here]"] != 1 {
		tt.Errorf("symbol [here] = %d, want 1 (last write wins)", a.Symbols()["[here]"])
	}
}

func TestUnresolvedSymbolFails(tt *testing.T) {
	mem := vm.NewMemory(16)
	a := NewAssembler(mem, DefaultConfig())

	err := a.Compile(strings.NewReader(":jump [nowhere]\n"), "bad.asm")

	var unresolved *UnresolvedSymbolError
	if !errors.As(err, &unresolved) {
		tt.Fatalf("err = %v, want UnresolvedSymbolError", err)
	}

	if unresolved.Name != "[nowhere]" {
		tt.Errorf("unresolved name = %q, want [nowhere]", unresolved.Name)
	}
}

func TestBuiltinGeometrySymbols(tt *testing.T) {
	mem := vm.NewMemory(16)
	a := NewAssembler(mem, Config{
		MemorySize: 16,
		Geometry:   vm.Geometry{Width: 320, Height: 240, LetterW: 8, LetterH: 16},
	})

	cases := map[string]int{
		"{width}":    320,
		"{height}":   240,
		"{letter-w}": 8,
		"{letter-h}": 16,
		"{grid-w}":   40,
		"{grid-h}":   15,
		"{memory}":   16,
		"{screen}":   int(vm.InterruptScreen),
		"{input}":    int(vm.InterruptInput),
		"{timeout}":  int(vm.InterruptTimeout),
	}

	for name, want := range cases {
		if got := a.Symbols()[name]; got != want {
			tt.Errorf("symbol %s = %d, want %d", name, got, want)
		}
	}
}

func TestCharacterLiteral(tt *testing.T) {
	mem := vm.NewMemory(16)
	a := NewAssembler(mem, DefaultConfig())

	if err := a.Compile(strings.NewReader(":copy $(A) #3\n:halt\n"), "char.asm"); err != nil {
		tt.Fatalf("compile: %v", err)
	}

	runToHalt(tt, mem)

	got, _ := mem.Read(3)
	if got != int('A') {
		tt.Errorf("memory[3] = %d, want %d ('A')", got, int('A'))
	}
}

func TestDeterminism(tt *testing.T) {
	source := `
:copy $1 #10
:test #10 = $1 [same] {take-no-jump}
:label same
:add #10 #10 #11
:halt
`

	_, mem1 := assemble(tt, source)
	_, mem2 := assemble(tt, source)

	v1, v2 := mem1.View(), mem2.View()
	if len(v1) != len(v2) {
		tt.Fatalf("different memory sizes")
	}

	for i := range v1 {
		if v1[i] != v2[i] {
			tt.Errorf("cell %d differs: %d vs %d", i, v1[i], v2[i])
		}
	}
}
