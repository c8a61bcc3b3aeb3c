package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/yardstick/internal/paths"
	"github.com/mesh-intelligence/yardstick/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string             `yaml:"backend" json:"backend"`
	DataDir string             `yaml:"data_dir,omitempty" json:"data_dir,omitempty"`
	Format  types.FormatConfig `yaml:"format" json:"format"`
}

func newInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize yardstick configuration and logbook",
		Long: `Create the configuration and data directories, then initialize the logbook.
With --force, config.yaml is rewritten from the effective configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "rewrite config.yaml from the effective configuration")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, force bool) error {
	cfg, err := a.logbookConfig()
	if err != nil {
		return sysError(err)
	}

	if force {
		path := paths.ConfigFile(a.configDir)
		if err := writeConfig(path, a.effectiveConfig(cfg.DataDir)); err != nil {
			return sysError(fmt.Errorf("write config: %w", err))
		}
		a.log.Debug("config written", "file", path)
	}

	if err := a.withLogbook(func(types.Logbook) error { return nil }); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "yardstick initialized successfully")
	return nil
}

// effectiveConfig snapshots the merged configuration.
func (a *app) effectiveConfig(dataDir string) configFile {
	return configFile{
		Backend: a.v.GetString(cfgKeyBackend),
		DataDir: dataDir,
		Format:  a.formatConfig(),
	}
}

// writeConfig marshals cfg to path with yaml.v3.
func writeConfig(path string, cfg configFile) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return sysError(err)
			}
			cfg := a.effectiveConfig(dataDir)
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return sysError(fmt.Errorf("marshal config: %w", err))
			}
			return a.emit(cmd, cfg, strings.TrimRight(string(data), "\n"))
		},
	}
}
