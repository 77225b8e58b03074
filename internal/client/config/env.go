package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name in the Config env tags.
const EnvPrefix = "ROOMADMIN_"

// parseEnv loads the optional dotenv file into the process environment
// (variables that are already set win) and then overlays cfg with every
// ROOMADMIN_* variable that is present. Unset variables keep earlier values.
func parseEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil {
			return fmt.Errorf("load env file %s: %w", dotenvPath, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
