// Package config loads the tasktracker configuration: defaults, then the
// user config file, then a project file in the working directory, then
// TASKTRACKER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/td0m/tasktracker/internal/logging"
	"github.com/td0m/tasktracker/pkg/kv"
	"gopkg.in/yaml.v3"
)

const (
	appName   = "tasktracker"
	envPrefix = "TASKTRACKER"
)

type Config struct {
	Store StoreConfig    `yaml:"store" mapstructure:"store"`
	Log   logging.Config `yaml:"log" mapstructure:"log"`
	UI    UIConfig       `yaml:"ui" mapstructure:"ui"`
}

type StoreConfig struct {
	// file, sqlite, redis or memory
	Backend string `yaml:"backend" mapstructure:"backend"`
	// empty picks a file in the user data directory
	Path  string      `yaml:"path" mapstructure:"path"`
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
	Prefix   string `yaml:"prefix" mapstructure:"prefix"`
}

type UIConfig struct {
	// how long a delete stays armed waiting for confirmation
	ConfirmTimeout time.Duration `yaml:"confirm_timeout" mapstructure:"confirm_timeout"`
}

func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: string(kv.BackendFile),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: appName + ":",
			},
		},
		Log: logging.Config{
			Level: "info",
		},
		UI: UIConfig{
			ConfirmTimeout: 3 * time.Second,
		},
	}
}

// Load reads the configuration. With an explicit path only that file is
// read, and it must exist; otherwise the user and project files are merged
// when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		for _, p := range []string{UserConfigPath(), ProjectConfigPath()} {
			if err := mergeFile(v, p); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key, which is also what lets AutomaticEnv
// pick up variables for keys no file mentions
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.redis.addr", d.Store.Redis.Addr)
	v.SetDefault("store.redis.password", d.Store.Redis.Password)
	v.SetDefault("store.redis.db", d.Store.Redis.DB)
	v.SetDefault("store.redis.prefix", d.Store.Redis.Prefix)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.confirm_timeout", d.UI.ConfirmTimeout)
}

// KV translates the store section into options for kv.Open, filling in
// the default path for file based backends
func (c *Config) KV() kv.Options {
	backend := kv.Backend(strings.ToLower(c.Store.Backend))
	path := c.Store.Path
	if path == "" {
		switch backend {
		case kv.BackendSQLite:
			path = filepath.Join(DataDir(), "store.db")
		default:
			path = filepath.Join(DataDir(), "store.json")
		}
	}
	return kv.Options{
		Backend: backend,
		Path:    path,
		Redis: kv.RedisOptions{
			Addr:     c.Store.Redis.Addr,
			Password: c.Store.Redis.Password,
			DB:       c.Store.Redis.DB,
			Prefix:   c.Store.Redis.Prefix,
		},
	}
}

// YAML renders the effective configuration
func (c *Config) YAML() (string, error) {
	bs, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// DataDir is $XDG_DATA_HOME/tasktracker, falling back to
// ~/.local/share/tasktracker
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultLogFile is where the TUI logs when no file is configured
func DefaultLogFile() string {
	return filepath.Join(DataDir(), appName+".log")
}

func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.yaml")
}

func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, "."+appName, "config.yaml")
}
