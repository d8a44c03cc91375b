package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultEnvFile    = ".env"
	DefaultDepsDir    = "node_modules"
	DefaultInstallCmd = "npm install"
	DefaultLogLevel   = "warn"
)

// Config holds the wizard's own runtime settings. These are distinct from
// the settings the wizard writes into the backend's env file.
type Config struct {
	Dir        string
	EnvFile    string
	DepsDir    string
	InstallCmd string
	LogLevel   string
}

func Load() *Config {
	return &Config{
		Dir:        getEnvOrDefault("SHOPSETUP_DIR", DefaultDir()),
		EnvFile:    getEnvOrDefault("SHOPSETUP_ENV_FILE", DefaultEnvFile),
		DepsDir:    getEnvOrDefault("SHOPSETUP_DEPS_DIR", DefaultDepsDir),
		InstallCmd: getEnvOrDefault("SHOPSETUP_INSTALL_CMD", DefaultInstallCmd),
		LogLevel:   getEnvOrDefault("SHOPSETUP_LOG_LEVEL", DefaultLogLevel),
	}
}

func DefaultDir() string {
	wd, err := os.Getwd()
	if err != nil || wd == "" {
		return "."
	}
	return wd
}

// EnvPath returns the env file location, resolved against Dir unless absolute.
func (c *Config) EnvPath() string {
	return c.resolve(c.EnvFile)
}

// DepsPath returns the installed-dependencies marker directory.
func (c *Config) DepsPath() string {
	return c.resolve(c.DepsDir)
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
