// Package config holds the small set of global render knobs that both
// the integrator and the render driver need to agree on.
package config

import "sync"

// Config mirrors the renderer's tunable defaults.
type Config struct {
	MinDepth     int
	MaxDepth     int
	PathSamples  int
	PathTrace    bool
	Denoise      bool
	DenoisePasses int
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		MinDepth:      3,
		MaxDepth:      1000,
		PathSamples:   8,
		PathTrace:     true,
		Denoise:       true,
		DenoisePasses: 2,
	}
}

var (
	mu      sync.RWMutex
	current = Default()
)

// Get returns a copy of the current global configuration.
func Get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the global configuration.
func Set(c Config) {
	mu.Lock()
	defer mu.Unlock()
	current = c
}

// SetPathSamples overrides just the path-sample count, as the CLI's
// required samples argument does.
func SetPathSamples(n int) {
	mu.Lock()
	defer mu.Unlock()
	current.PathSamples = n
}
