// Config loading for the addressbook CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/addressbook/internal/logging"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyBirthdayWindow = "birthday_window"
	cfgKeyLogLevel       = "log_level"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend        string `yaml:"backend"`
	DataDir        string `yaml:"data_dir,omitempty"`
	BirthdayWindow int    `yaml:"birthday_window"`
	LogLevel       string `yaml:"log_level"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:        types.BackendJSONL,
		BirthdayWindow: types.DefaultBirthdayWindow,
		LogLevel:       logging.DefaultLevel,
	}
}

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), defaultConfigFile()); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	defaults := defaultConfigFile()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaults.Backend)
	v.SetDefault(cfgKeyBirthdayWindow, defaults.BirthdayWindow)
	v.SetDefault(cfgKeyLogLevel, defaults.LogLevel)
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

// writeConfigIfMissing creates the config file at path with cfg if it does
// not exist. An existing file is left as is.
func writeConfigIfMissing(path string, cfg configFile) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return rewriteConfig(path, cfg)
}

// rewriteConfig writes cfg to path, replacing any existing file.
func rewriteConfig(path string, cfg configFile) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append([]byte("# addressbook configuration\n"), data...)
	return os.WriteFile(path, data, 0o644)
}
