package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv fills a config struct from environment variables. Server
// settings follow the OMERTA_ naming convention in their env tags.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
