// Package config loads rc5 tool settings from a YAML file, RC5_* environment
// variables and defaults, in increasing order of precedence: defaults, file,
// environment. Command line flags are applied on top by the caller.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"rc5-go/pkg/appdir"
	"rc5-go/pkg/rc5"
)

type Config struct {
	Params     string `mapstructure:"params"`         // RC5-w/r/b
	Key        string `mapstructure:"key"`            // hex encoded key
	KeyFile    string `mapstructure:"key_file"`       // raw key bytes
	LogDB      string `mapstructure:"log_db"`         // SQLite journal, relative to the app dir
	ListenAddr string `mapstructure:"listen_address"` // HTTP API address
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:     rc5.DefaultParams().String(),
		LogDB:      "rc5.db",
		ListenAddr: "127.0.0.1:7780",
		ConfigFile: "rc5",
	}
}

// Load reads file when given, otherwise looks for rc5.yaml in the working
// directory, /etc/rc5-go and the app dir. A missing default file is not an
// error; a missing explicit file is.
func Load(file string) (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetDefault("params", cfg.Params)
	v.SetDefault("key", cfg.Key)
	v.SetDefault("key_file", cfg.KeyFile)
	v.SetDefault("log_db", cfg.LogDB)
	v.SetDefault("listen_address", cfg.ListenAddr)
	v.SetDefault("debug", cfg.Debug)
	v.SetDefault("config_file", cfg.ConfigFile)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(cfg.ConfigFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/rc5-go/")
		v.AddConfigPath(appdir.AppDir())
	}
	v.SetEnvPrefix("RC5")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else {
		v.Set("config_file", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// CipherParams parses and validates the configured parameterization.
func (c *Config) CipherParams() (rc5.Params, error) {
	p, err := rc5.ParseParams(c.Params)
	if err != nil {
		return rc5.Params{}, fmt.Errorf("config: params: %w", err)
	}
	return p, nil
}

// KeyBytes returns the key from Key (hex) or, when empty, from KeyFile.
func (c *Config) KeyBytes() ([]byte, error) {
	switch {
	case c.Key != "" && c.KeyFile != "":
		return nil, errors.New("config: key and key_file are mutually exclusive")
	case c.Key != "":
		return DecodeHex(c.Key)
	case c.KeyFile != "":
		b, err := os.ReadFile(c.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("config: key file: %w", err)
		}
		return b, nil
	}
	return []byte{}, nil
}

// DecodeHex decodes hex text, ignoring whitespace and an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("config: invalid hex: %w", err)
	}
	return b, nil
}
