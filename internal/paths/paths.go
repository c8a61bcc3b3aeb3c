// Package paths locates the two directories yardstick works from.
//
// The config directory holds config.yaml, which carries the logbook backend
// and the default rendering settings (style, scale, denominator, units). It
// is per user. The data directory holds the logbook of saved results and is
// per project: unless overridden it is .yardstick-db under the working
// directory, so measurements taken in one workshop folder stay there.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDirName is the logbook directory created under the working
// directory when nothing else names one.
const DefaultDataDirName = ".yardstick-db"

// ConfigFileName is the configuration file inside the config directory.
const ConfigFileName = "config.yaml"

const appName = "yardstick"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "YARDSTICK_CONFIG_DIR"
	EnvDataDir   = "YARDSTICK_DATA_DIR"
)

// platformDir holds platform lookups that tests override.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	workingDir    func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	workingDir:    os.Getwd,
}

// DefaultConfigDir returns the per-user directory holding config.yaml.
//
// Linux:   $XDG_CONFIG_HOME/yardstick (fallback ~/.config/yardstick)
// macOS:   ~/Library/Application Support/yardstick
// Windows: %APPDATA%/yardstick
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ResolveConfigDir picks the config directory: the --config-dir flag, then
// YARDSTICK_CONFIG_DIR, then DefaultConfigDir. Overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok := firstSet(flag, os.Getenv(EnvConfigDir)); ok {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the logbook directory: the --data-dir flag, then
// data_dir from config.yaml, then YARDSTICK_DATA_DIR, then
// $(CWD)/.yardstick-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if dir, ok := firstSet(flag, configYAMLValue, os.Getenv(EnvDataDir)); ok {
		return filepath.Abs(dir)
	}
	cwd, err := platformDir.workingDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the path of config.yaml inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

func firstSet(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c != "" {
			return c, true
		}
	}
	return "", false
}
