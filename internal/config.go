package internal

import (
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"gopkg.in/yaml.v2"
)

// Config holds the runtime's tunable settings.
type Config struct {
	// MemoryLimit is the maximum number of bytes live objects may reserve.
	// Zero selects the platform default, which is the process's address space
	// limit where one is available. Negative means no limit.
	MemoryLimit int64 `yaml:"memoryLimit"`
	// Debug enables tracing of class lifecycle events to the logger.
	Debug bool `yaml:"debug"`
}

// config is the active configuration.
var config struct {
	mu  sync.Mutex
	cur Config

	// limit is the effective memory limit. Zero means unlimited.
	limit atomic.Int64
	// debug mirrors cur.Debug for lock-free checks.
	debug atomic.Bool
	// logger receives trace messages.
	logger atomic.Pointer[log.Logger]
}

func init() {
	config.logger.Store(log.New(os.Stderr, "objectively: ", log.LstdFlags))
	Configure(Config{})
}

// ParseConfig decodes a YAML configuration. Unknown keys are an error.
func ParseConfig(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("objectively: parsing config: %w", err)
	}
	return cfg, nil
}

// Configure replaces the active configuration. Objects already alive keep
// their reservations even if they exceed a new, lower limit.
func Configure(cfg Config) {
	config.mu.Lock()
	defer config.mu.Unlock()
	limit := cfg.MemoryLimit
	switch {
	case limit == 0:
		limit = platformMemoryLimit()
	case limit < 0:
		limit = 0
	}
	config.cur = cfg
	config.limit.Store(limit)
	config.debug.Store(cfg.Debug)
}

// CurrentConfig returns the active configuration.
func CurrentConfig() Config {
	config.mu.Lock()
	defer config.mu.Unlock()
	return config.cur
}

// MemoryLimit returns the effective memory limit in bytes, or zero if there
// is no limit.
func MemoryLimit() int64 {
	return config.limit.Load()
}

// SetLogger sets the logger that receives trace messages. A nil logger
// restores the default, which writes to standard error.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(os.Stderr, "objectively: ", log.LstdFlags)
	}
	config.logger.Store(l)
}

// tracef logs a message if debugging is enabled.
func tracef(format string, args ...interface{}) {
	if config.debug.Load() {
		config.logger.Load().Printf(format, args...)
	}
}
