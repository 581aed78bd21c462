// Package config loads Config.txt: a flat key=value text file that seeds
// the VM's geometry, memory size and initial registers.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/smoynes/coder/internal/vm"
)

// ErrConfig is wrapped by every error config.Load produces.
var ErrConfig = errors.New("config: invalid")

// ConfigError names the offending key and line.
type ConfigError struct {
	Line   int
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: line %d: key %q: %s", e.Line, e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// recognized is the set of keys Config.txt may define, matching
// spec.md's configuration table exactly.
var recognized = map[string]bool{
	"width":     true,
	"height":    true,
	"letter-w":  true,
	"letter-h":  true,
	"memory":    true,
	"program":   true,
	"stack":     true,
	"interrupt": true,
}

// Config holds the parsed integer value of every recognized key that was
// present. Absent memory and register keys produce no OptionFn, so vm.New's
// own defaults apply; absent geometry keys fall back to vm's default
// geometry constants.
type Config struct {
	values map[string]int
}

// Load reads key=value lines from r. A line that doesn't split cleanly
// on "=" is a comment and is ignored. A line that does split but names
// an unrecognized key is an error -- Config.txt is meant to be strict
// enough to catch a typo'd key immediately.
func Load(r io.Reader) (Config, error) {
	cfg := Config{values: make(map[string]int)}

	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		key, value, ok := strings.Cut(text, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if !recognized[key] {
			return Config{}, &ConfigError{Line: line, Key: key, Reason: "unrecognized key"}
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return Config{}, &ConfigError{Line: line, Key: key, Reason: "value is not an integer"}
		}

		cfg.values[key] = n
	}

	if err := scanner.Err(); err != nil {
		return Config{}, fmt.Errorf("config: reading: %w", err)
	}

	return cfg, nil
}

func (c Config) get(key string) (int, bool) {
	n, ok := c.values[key]
	return n, ok
}

// MemorySize returns the configured memory cell count, or vm's default
// if the config file didn't set one. The assembler needs this value
// directly, ahead of vm.New, to seed its {memory} built-in symbol.
func (c Config) MemorySize() int {
	if n, ok := c.get("memory"); ok {
		return n
	}

	return vm.DefaultMemorySize
}

// Geometry returns the window/letter geometry described by the config,
// starting from vm's own defaults and overriding only the keys present.
func (c Config) Geometry() vm.Geometry {
	g := vm.Geometry{
		Width:   vm.DefaultWidth,
		Height:  vm.DefaultHeight,
		LetterW: vm.DefaultLetterW,
		LetterH: vm.DefaultLetterH,
	}

	if n, ok := c.get("width"); ok {
		g.Width = n
	}

	if n, ok := c.get("height"); ok {
		g.Height = n
	}

	if n, ok := c.get("letter-w"); ok {
		g.LetterW = n
	}

	if n, ok := c.get("letter-h"); ok {
		g.LetterH = n
	}

	return g
}

// Options builds the vm.OptionFn slice to be passed straight to vm.New: a
// geometry option, always, followed by one option for each memory or
// register key the config file actually set.
func (c Config) Options() []vm.OptionFn {
	var opts []vm.OptionFn

	opts = append(opts, vm.WithGeometry(c.Geometry()))

	if n, ok := c.get("memory"); ok {
		opts = append(opts, vm.WithMemorySize(n))
	}

	if n, ok := c.get("program"); ok {
		opts = append(opts, vm.WithProgramCounter(n))
	}

	if n, ok := c.get("stack"); ok {
		opts = append(opts, vm.WithStackPointer(n))
	}

	if n, ok := c.get("interrupt"); ok {
		opts = append(opts, vm.WithInterruptPointer(n))
	}

	return opts
}
