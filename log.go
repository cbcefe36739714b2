package qsim

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// SetLogLevel sets the level of the package's debug logger.
func SetLogLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("set log level: %w", err)
	}

	log.SetLevel(lvl)
	return nil
}
