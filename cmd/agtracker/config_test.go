package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleConfig = `
[email]
host = "imap.example.com:993"
user = "tracker@example.com"
password = "secret"
from = "@rockblock.rock7.com"

[device]
imei = "300434060123450"

[rockblock]
user = "rbuser"
password = "rbsecret"
`

func TestLoadConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "agtracker")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "config.toml")
	if err := ioutil.WriteFile(path, []byte(sampleConfig), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Email.Host != "imap.example.com:993" {
		t.Errorf("Unexpected host: %s", cfg.Email.Host)
	}
	if cfg.Email.User != "tracker@example.com" || cfg.Email.Password != "secret" {
		t.Error("Unexpected mail credentials")
	}
	if cfg.Email.From != "@rockblock.rock7.com" {
		t.Errorf("Unexpected from filter: %s", cfg.Email.From)
	}
	if cfg.Device.IMEI != "300434060123450" {
		t.Errorf("Unexpected IMEI: %s", cfg.Device.IMEI)
	}
	if cfg.RockBLOCK.User != "rbuser" || cfg.RockBLOCK.Password != "rbsecret" {
		t.Error("Unexpected gateway credentials")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig("does-not-exist.toml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestParsePosition(t *testing.T) {
	lon, lat, alt, err := parsePosition("-122.084,37.4219,30.0")
	if err != nil {
		t.Fatal(err)
	}
	if lon != -122.084 || lat != 37.4219 || alt != 30.0 {
		t.Errorf("Unexpected position: %v %v %v", lon, lat, alt)
	}
	if _, _, _, err := parsePosition("1,2"); err == nil {
		t.Error("Expected error for missing component")
	}
	if _, _, _, err := parsePosition("a,b,c"); err == nil {
		t.Error("Expected error for non-numeric component")
	}
}

func TestParseTime(t *testing.T) {
	want := time.Date(2022, 8, 20, 6, 30, 4, 0, time.UTC)
	for _, in := range []string{"2022-08-20 06:30:04", "2022-08-20T06:30:04"} {
		got, err := parseTime(in)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(want) {
			t.Errorf("Expected %v, got: %v", want, got)
		}
	}
	if _, err := parseTime("yesterday"); err == nil {
		t.Error("Expected error for invalid time")
	}
	now, err := parseTime("now")
	if err != nil {
		t.Fatal(err)
	}
	if time.Since(now) > time.Minute {
		t.Error("now is not current")
	}
}
