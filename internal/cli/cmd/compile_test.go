package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smoynes/coder/internal/image"
	"github.com/smoynes/coder/internal/log"
	"github.com/smoynes/coder/internal/vm"
)

func TestCompile_WritesImage(tt *testing.T) {
	dir := tt.TempDir()
	src := filepath.Join(dir, "prog.asm")
	out := filepath.Join(dir, "a.prgm")

	if err := os.WriteFile(src, []byte(":copy $5 #2\n:halt\n"), 0o644); err != nil {
		tt.Fatal(err)
	}

	c := Compile().(*compile)
	c.output = out
	c.config = filepath.Join(dir, "missing-Config.txt")

	logger := log.NewFormattedLogger(&bytes.Buffer{})

	code := c.Run(context.Background(), []string{src}, &bytes.Buffer{}, logger)
	if code != 0 {
		tt.Fatalf("Run returned %d, want 0", code)
	}

	f, err := os.Open(out)
	if err != nil {
		tt.Fatalf("open output: %v", err)
	}
	defer f.Close()

	mem := vm.NewMemory(vm.DefaultMemorySize)

	if _, err := image.Load(f, mem); err != nil {
		tt.Fatalf("load image: %v", err)
	}

	got, _ := mem.Read(0)
	if got != int(vm.OpCopy) {
		tt.Errorf("memory[0] = %d, want copy opcode", got)
	}

	got, _ = mem.Read(2)
	if got != 5 {
		tt.Errorf("memory[2] = %d, want 5", got)
	}
}

func TestCompile_NoSourceFilesFails(tt *testing.T) {
	c := Compile().(*compile)
	logger := log.NewFormattedLogger(&bytes.Buffer{})

	code := c.Run(context.Background(), nil, &bytes.Buffer{}, logger)
	if code == 0 {
		tt.Fatal("Run returned 0, want a nonzero exit code")
	}
}
