package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/yardstick/internal/paths"
	"github.com/mesh-intelligence/yardstick/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "YARDSTICK"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyStyle       = "format.style"
	cfgKeyScale       = "format.scale"
	cfgKeyDenominator = "format.denominator"
	cfgKeyUnits       = "format.units"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# yardstick configuration

# Logbook backend
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Default rendering for format and calc
format:
  style: fraction     # fraction or decimal
  scale: 3            # fractional digits for decimal style
  denominator: 16     # finest fraction for fraction style
  units: yd,ft,in     # largest unit first
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. A missing
// config.yaml is not an error. Format keys may be overridden with
// YARDSTICK_FORMAT_STYLE and friends.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	def := types.DefaultFormatConfig()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyStyle, def.Style)
	v.SetDefault(cfgKeyScale, def.Scale)
	v.SetDefault(cfgKeyDenominator, def.Denominator)
	v.SetDefault(cfgKeyUnits, def.Units)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// data_dir is left out: YARDSTICK_DATA_DIR ranks below config.yaml
	// and is handled by paths.ResolveDataDir.
	for _, key := range []string{cfgKeyBackend, cfgKeyStyle, cfgKeyScale, cfgKeyDenominator, cfgKeyUnits} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// logbookConfig returns the backend configuration for the resolved data dir.
func (a *app) logbookConfig() (types.Config, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{
		Backend: a.v.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}, nil
}

// formatConfig returns the format section. Keys are read one at a time so
// that bound flags and env overrides apply to each of them.
func (a *app) formatConfig() types.FormatConfig {
	return types.FormatConfig{
		Style:       a.v.GetString(cfgKeyStyle),
		Scale:       a.v.GetInt(cfgKeyScale),
		Denominator: a.v.GetInt(cfgKeyDenominator),
		Units:       a.v.GetString(cfgKeyUnits),
	}
}
