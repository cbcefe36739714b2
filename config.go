package qsim

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Pi is the rotation constant the QFT divides by powers of two.
const Pi = math.Pi

/*
Config holds the settings that are resolved once, before a register is
built. Parallel selects whether composite operations (the QFT, circuits)
use the worker pool or the single-goroutine gate loops.
*/
type Config struct {
	Workers  int
	Parallel bool
	MinChunk int
	LogLevel string
	Qubits   int
}

func NewConfig() *Config {
	return &Config{
		Workers:  runtime.GOMAXPROCS(0),
		Parallel: true,
		MinChunk: 1024,
		LogLevel: "info",
		Qubits:   14,
	}
}

/*
LoadConfig reads the configuration from v, falling back to NewConfig's
defaults. Every key can be overridden from the environment with the QSIM_
prefix, e.g. QSIM_WORKERS=8 or QSIM_MIN_CHUNK=4096. Passing nil uses a
fresh viper instance.
*/
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	defaults := NewConfig()
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("parallel", defaults.Parallel)
	v.SetDefault("min_chunk", defaults.MinChunk)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("qubits", defaults.Qubits)

	v.SetEnvPrefix("qsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	config := &Config{
		Workers:  v.GetInt("workers"),
		Parallel: v.GetBool("parallel"),
		MinChunk: v.GetInt("min_chunk"),
		LogLevel: v.GetString("log_level"),
		Qubits:   v.GetInt("qubits"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}

	if c.MinChunk < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidChunk, c.MinChunk)
	}

	// 1<<Qubits amplitudes must stay addressable as an int.
	if c.Qubits < 1 || c.Qubits > 40 {
		return fmt.Errorf("%w: %d", ErrInvalidQubits, c.Qubits)
	}

	return nil
}
