package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := LoadConfig(path)

	if cfg.Port != "38870" || cfg.Width != 1280 || cfg.Height != 720 || cfg.FPS != 60 {
		t.Errorf("defaults = %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
	if GetConfigValue("storagekey") != "snakeHighScores" {
		t.Errorf("storagekey = %v", GetConfigValue("storagekey"))
	}
	if GetConfigValue("nope") != "" {
		t.Error("unknown key should be empty")
	}
}

func TestReloadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"port":"9000","width":-5,"height":99999,"fps":30,"muted":true}`), 0644)

	cfg, err := Reload(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9000" || cfg.FPS != 30 || !cfg.Muted {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Width != 1280 {
		t.Errorf("invalid width not replaced: %d", cfg.Width)
	}
	if cfg.Height != MaxDimension {
		t.Errorf("oversized height not clamped: %d", cfg.Height)
	}
}

func TestReloadKeepsOldOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"port":"9100"}`), 0644)
	if _, err := Reload(path); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(path, []byte(`{broken`), 0644)
	if _, err := Reload(path); err == nil {
		t.Fatal("expected decode error")
	}
	if Current().Port != "9100" {
		t.Errorf("port = %s", Current().Port)
	}
}

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"fps":30}`), 0644)

	changed := make(chan *AppConfig, 4)
	done := make(chan struct{})
	defer close(done)
	if err := WatchConfig(path, func(c *AppConfig) { changed <- c }, done); err != nil {
		t.Fatal(err)
	}

	os.WriteFile(path, []byte(`{"fps":45}`), 0644)
	timeout := time.After(3 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.FPS == 45 {
				return
			}
		case <-timeout:
			t.Fatal("config change not observed")
		}
	}
}
