// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Demiserver Contributors

package main

import (
	"fmt"
	"net/url"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/demigame/demiserver/internal/xdg"
)

// Default listen addresses.
const (
	defaultGatewayAddr = ":4100"
	defaultMetricsAddr = "127.0.0.1:9100"
)

// StoreConfig locates one PostgreSQL database.
type StoreConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Secret   string `koanf:"secret"`
}

// DSN renders the store as a postgres:// URL. Credentials are URL-escaped,
// so secrets may contain any character.
func (c StoreConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Secret),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	return u.String()
}

func (c StoreConfig) validate(name string) error {
	if c.Host == "" || c.Database == "" || c.User == "" {
		return oops.Code("CONFIG_INVALID").
			With("store", name).
			Errorf("store %q requires host, database, and user", name)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return oops.Code("CONFIG_INVALID").
			With("store", name).
			Errorf("store %q has invalid port %d", name, c.Port)
	}
	return nil
}

// Config is the full server configuration. Values are layered: built-in
// defaults, then the YAML config file, then command line flags.
type Config struct {
	Gateway struct {
		Addr string `koanf:"addr"`
	} `koanf:"gateway"`
	Metrics struct {
		// Addr is the metrics/health HTTP address; empty disables it.
		Addr string `koanf:"addr"`
	} `koanf:"metrics"`
	Log struct {
		Format string `koanf:"format"`
	} `koanf:"log"`
	AuthStore      StoreConfig `koanf:"auth_store"`
	CharacterStore StoreConfig `koanf:"character_store"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.Gateway.Addr = defaultGatewayAddr
	cfg.Metrics.Addr = defaultMetricsAddr
	cfg.Log.Format = defaultLogFormat
	cfg.AuthStore.Port = 5432
	cfg.CharacterStore.Port = 5432
	return cfg
}

// loadConfig layers the optional config file and flags over the defaults.
// Flags use dotted names matching config keys (e.g. --gateway.addr), and a
// flag left at its default never shadows a config file value. With no
// explicit path, the XDG config directory is probed for a config.yaml.
func loadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = xdg.DefaultConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
		}
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
		}
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code("CONFIG_INVALID").Wrap(err)
	}

	if err := cfg.AuthStore.validate("auth_store"); err != nil {
		return Config{}, err
	}
	if err := cfg.CharacterStore.validate("character_store"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
