package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// API_URL is the default base authority of the DevLink API.
const API_URL = "http://localhost:8080"

const (
	envPrefix  = "DEVLINK"
	configName = "devlink"
	appDirName = ".devlink"
)

type Config struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Log     LogConfig     `mapstructure:"log"`
	Journal JournalConfig `mapstructure:"journal"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AddFlags registers the command-line overrides understood by Load.
func AddFlags(fs *pflag.FlagSet) {
	fs.String("api-url", API_URL, "base URL of the DevLink API")
	fs.Duration("timeout", 0, "HTTP timeout per request (0 means none)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-file", "", "also write JSON logs to this file, rotated")
	fs.Bool("journal", false, "record auth attempts in the local journal")
	fs.String("journal-path", "", "path of the journal database")
	fs.String("config", "", "path to a config file")
}

// Load reads configuration from, in increasing precedence: defaults, a
// devlink.yaml in the working or app directory, a .env file, DEVLINK_*
// environment variables, and flags in fs that were explicitly set.
// fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Journal.Path == "" {
		dir, err := AppDir()
		if err != nil {
			return nil, err
		}
		cfg.Journal.Path = filepath.Join(dir, "journal.db")
	}

	return cfg, cfg.Validate()
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url must not be empty")
	}
	if !strings.HasPrefix(c.APIURL, "http://") && !strings.HasPrefix(c.APIURL, "https://") {
		return fmt.Errorf("api_url %q must start with http:// or https://", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// AppDir returns ~/.devlink, creating it if needed.
func AppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	dir := filepath.Join(homeDir, appDirName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create app directory %s: %w", dir, err)
	}
	return dir, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", API_URL)
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"api_url":         "api-url",
		"timeout":         "timeout",
		"log.level":       "log-level",
		"log.file":        "log-file",
		"journal.enabled": "journal",
		"journal.path":    "journal-path",
	}
	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	if fs != nil {
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			return nil
		}
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, appDirName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
