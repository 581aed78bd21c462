package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/smoynes/coder/internal/config"
	"github.com/smoynes/coder/internal/image"
	"github.com/smoynes/coder/internal/log"
	"github.com/smoynes/coder/internal/vm"
)

// loadConfig reads path if it exists and returns its parsed Config. A
// missing config file is not an error -- compile and run both fall back
// to vm's own defaults.
func loadConfig(path string, logger *log.Logger) (config.Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logger.Debug("no config file, using defaults", "file", path)
		return config.Load(strings.NewReader(""))
	} else if err != nil {
		return config.Config{}, err
	}
	defer f.Close()

	return config.Load(f)
}

// memoryForAssembly allocates the memory image compile assembles into,
// sized to match what run will later load it with.
func memoryForAssembly(cfg config.Config) vm.Memory {
	return vm.NewMemory(cfg.MemorySize())
}

// saveImage writes mem to w in the plain decimal format run's LoadImage
// reads back.
func saveImage(w io.Writer, mem vm.Memory) error {
	return image.Save(w, mem)
}
