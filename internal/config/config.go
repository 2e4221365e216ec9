// Package config resolves client and daemon settings from defaults, the TOML
// config file, an optional .env file and NEBULA_* environment variables, in
// that order of increasing precedence. CLI flags are applied on top by cmd.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
)

const (
	defaultDir     = "~/.config/nebula"
	configFileName = "config.toml"
	defaultTimeout = 30 * time.Second
)

// Config is the resolved configuration.
type Config struct {
	ServerURL string
	Token     string
	Timeout   time.Duration
	Proxy     string
	RPCListen string
	RPCSecret string
	// Dir holds config.toml, profiles.toml, profile.key and history.db.
	Dir   string
	Debug bool
}

type fileConfig struct {
	ServerURL string `toml:"server_url"`
	Token     string `toml:"token"`
	Timeout   string `toml:"timeout"`
	Proxy     string `toml:"proxy"`
	RPCListen string `toml:"rpc_listen"`
	RPCSecret string `toml:"rpc_secret"`
}

// Load reads the config file at path (empty: <dir>/config.toml) and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	dir := strings.TrimSpace(os.Getenv(common.ConfigDirEnv))
	if dir == "" {
		dir = defaultDir
	}
	dir, err := expandPath(dir)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Timeout:   defaultTimeout,
		RPCListen: common.DefaultRPCListen,
		Dir:       dir,
	}

	if strings.TrimSpace(path) == "" {
		path = filepath.Join(dir, configFileName)
	}
	resolved, err := expandPath(path)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.readFile(resolved); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnvFile exports the variables of a dotenv file that are not already
// set. A missing file is ignored.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func (c *Config) readFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	c.ServerURL = strings.TrimSpace(raw.ServerURL)
	c.Token = strings.TrimSpace(raw.Token)
	c.Proxy = strings.TrimSpace(raw.Proxy)
	c.RPCSecret = strings.TrimSpace(raw.RPCSecret)
	if v := strings.TrimSpace(raw.RPCListen); v != "" {
		c.RPCListen = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: timeout: %w", err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.ServerURL, common.ServerURLEnv)
	set(&c.Token, common.TokenEnv)
	set(&c.Proxy, common.ProxyEnv)
	set(&c.RPCListen, common.RPCListenEnv)
	set(&c.RPCSecret, common.RPCSecretEnv)

	if v := strings.TrimSpace(os.Getenv(common.TimeoutEnv)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", common.TimeoutEnv, err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(common.DebugEnv)); v != "" {
		c.Debug, _ = strconv.ParseBool(v)
	}
	return nil
}

// HistoryPath is the SQLite history database.
func (c Config) HistoryPath() string {
	return filepath.Join(c.Dir, "history.db")
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
