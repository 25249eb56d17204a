package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the credentials for the mail and device transports.
type Config struct {
	Email     EmailConfig     `toml:"email"`
	Device    DeviceConfig    `toml:"device"`
	RockBLOCK RockBLOCKConfig `toml:"rockblock"`
}

// EmailConfig describes the IMAP account that receives the gateway mails.
type EmailConfig struct {
	Host     string `toml:"host"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	// From overrides the sender address filter.
	From string `toml:"from"`
}

// DeviceConfig identifies the tracker.
type DeviceConfig struct {
	IMEI string `toml:"imei"`
}

// RockBLOCKConfig holds the RockBLOCK account credentials.
type RockBLOCKConfig struct {
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func loadConfig(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("Loading config %s failed: %w", path, err)
	}
	return &cfg, nil
}
