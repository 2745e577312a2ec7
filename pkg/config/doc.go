// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files (the working directory's .env when
//     called without arguments).
//   - Load parses the environment into any struct with `env` tags and caches
//     the result per type; MustLoad panics instead of returning an error.
//   - ResetCache and ForceReload drop cached values, which tests rely on.
//
// Framework is the settings struct shared by the bones, sanitizer and
// translation packages:
//
//	var fw config.Framework
//	config.MustLoad(&fw)
//	aliases, err := fw.Aliases()
package config
