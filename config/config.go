// Copyright 2026 The wif authors.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the process-wide server configuration from a JSON
// file, creating one with sane defaults on first run: a missing or
// unparsable file is never a hard failure at startup, it's logged and a
// default config is written out and used for the run.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// SSL holds the TLS listener settings.
type SSL struct {
	Enabled bool   `json:"enabled"`
	Key     string `json:"key"`
	Cert    string `json:"cert"`
}

// Config is the immutable, process-wide configuration struct. It is
// loaded once at startup and copied into the server, which hands the
// registry its image path; nothing mutates it after Load returns.
type Config struct {
	IP          [4]byte `json:"ip"`
	Port        uint16  `json:"port"`
	SSL         SSL     `json:"ssl"`
	ImagePath   string  `json:"image_path"`
	JPGQuality  uint8   `json:"jpg_quality"`
	BaseAddress string  `json:"base_address"`
	MaxArea     uint64  `json:"max_area"`
}

// Default returns the configuration used when no config file exists yet.
func Default() Config {
	return Config{
		IP:          [4]byte{127, 0, 0, 1},
		Port:        8000,
		SSL:         SSL{Enabled: false},
		ImagePath:   "./files",
		JPGQuality:  80,
		BaseAddress: "http://localhost",
		MaxArea:     1 << 30,
	}
}

// Load reads path (default "./config.json"). If the file is missing or
// fails to parse, a default Config is constructed, persisted to path for
// next time, and returned for this run — the attempt to persist is
// logged either way, it is never silently dropped.
func Load(path string) Config {
	if path == "" {
		path = "./config.json"
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("config: cannot read %s: %v; writing defaults", path, err)
		return writeDefault(path)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		log.Printf("config: cannot parse %s: %v; writing defaults", path, err)
		return writeDefault(path)
	}

	return cfg
}

func writeDefault(path string) Config {
	cfg := Default()
	if err := save(path, cfg); err != nil {
		log.Printf("config: failed to write default config to %s: %v", path, err)
	}
	return cfg
}

func save(path string, cfg Config) error {
	buf, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Addr returns the "ip:port" listen address string.
func (c Config) Addr() string {
	return fmt.Sprintf("%d.%d.%d.%d:%d", c.IP[0], c.IP[1], c.IP[2], c.IP[3], c.Port)
}
