package cryptox

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Default Argon2id cost. Memory can be raised via SetCost for deployments
// with headroom; verification always honours the parameters stored in the
// hash itself.
const (
	defaultMemory      = 19 * 1024 // KiB (19 MiB)
	defaultIterations  = 2
	defaultParallelism = 1
	keyLength          = 32
	saltLength         = 16
)

type argonParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

var (
	costMu      sync.RWMutex
	currentCost = argonParams{defaultMemory, defaultIterations, defaultParallelism}

	pepper     string
	pepperFile string
)

// SetCost overrides the Argon2id work factor used for new hashes. Zero values
// keep the current setting.
func SetCost(memoryKiB, iterations uint32, parallelism uint8) {
	costMu.Lock()
	defer costMu.Unlock()
	if memoryKiB > 0 {
		currentCost.memory = memoryKiB
	}
	if iterations > 0 {
		currentCost.iterations = iterations
	}
	if parallelism > 0 {
		currentCost.parallelism = parallelism
	}
}

func params() argonParams {
	costMu.RLock()
	defer costMu.RUnlock()
	return currentCost
}

func SetPepperPath(file string) {
	pepperFile = file
}

func GetPepper() string {
	if pepper != "" {
		return pepper
	}

	var err error
	pepper, err = loadOrGeneratePepper()
	if err != nil {
		slog.Error("failed to load or generate pepper", slog.Any("err", err))
		os.Exit(1)
	}

	return pepper
}

// loadOrGeneratePepper loads the pepper from a file or generates one if not found.
func loadOrGeneratePepper() (string, error) {
	pepperFile = filepath.Clean(pepperFile)
	if err := os.MkdirAll(filepath.Dir(pepperFile), 0750); err != nil {
		return "", err
	}

	if _, err := os.Stat(pepperFile); os.IsNotExist(err) {
		generated, err := GenerateToken(TokenSize256)
		if err != nil {
			return "", err
		}

		if err := os.WriteFile(pepperFile, []byte(generated), 0600); err != nil {
			return "", err
		}
		return generated, nil
	}

	raw, err := os.ReadFile(pepperFile)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
