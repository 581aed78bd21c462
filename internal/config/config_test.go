package config_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/smoynes/coder/internal/config"
)

func TestLoad_ParsesRecognizedKeys(tt *testing.T) {
	cfg, err := config.Load(strings.NewReader(`
width=320
height=240
letter-w=8
letter-h=16
memory=512
program=0
stack=500
interrupt=400
`))
	if err != nil {
		tt.Fatalf("load: %v", err)
	}

	geo := cfg.Geometry()
	if geo.Width != 320 || geo.Height != 240 || geo.LetterW != 8 || geo.LetterH != 16 {
		tt.Errorf("geometry = %+v, want 320x240 @ 8x16", geo)
	}

	opts := cfg.Options()
	if len(opts) != 5 {
		tt.Fatalf("options = %d, want 5 (geometry + 4 registers)", len(opts))
	}
}

func TestLoad_IgnoresCommentLines(tt *testing.T) {
	cfg, err := config.Load(strings.NewReader(`
# this is a comment, no equals sign
width=100
`))
	if err != nil {
		tt.Fatalf("load: %v", err)
	}

	if cfg.Geometry().Width != 100 {
		tt.Errorf("width = %d, want 100", cfg.Geometry().Width)
	}
}

func TestLoad_UnrecognizedKeyFails(tt *testing.T) {
	_, err := config.Load(strings.NewReader("wdth=320\n"))

	var cerr *config.ConfigError
	if !errors.As(err, &cerr) {
		tt.Fatalf("err = %v, want ConfigError", err)
	}

	if cerr.Key != "wdth" {
		tt.Errorf("key = %q, want wdth", cerr.Key)
	}
}

func TestLoad_NonIntegerValueFails(tt *testing.T) {
	_, err := config.Load(strings.NewReader("width=wide\n"))
	if !errors.Is(err, config.ErrConfig) {
		tt.Fatalf("err = %v, want ErrConfig", err)
	}
}

func TestLoad_DefaultsWhenKeyAbsent(tt *testing.T) {
	cfg, err := config.Load(strings.NewReader("memory=1024\n"))
	if err != nil {
		tt.Fatalf("load: %v", err)
	}

	if cfg.Geometry().Width == 0 {
		tt.Error("width should fall back to vm's default, not zero")
	}
}
