package config

import "github.com/kelseyhightower/envconfig"

// EnvPrefix prefixes every environment override, e.g. TZC_STORAGE_DRIVER.
const EnvPrefix = "TZC"

// applyEnv overrides fields from the environment. Unset variables leave the
// file values in place.
func applyEnv(cfg *Config) error {
	return envconfig.Process(EnvPrefix, cfg)
}
