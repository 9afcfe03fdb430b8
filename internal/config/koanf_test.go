// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("explicit missing config file should error")
	}

	cfg, err = loadWithoutFile(t)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 3861 {
		t.Errorf("default port = %d, want 3861", cfg.Server.Port)
	}
	if cfg.Prefs.VectorWeight != 0.7 {
		t.Errorf("default vector_weight = %v, want 0.7", cfg.Prefs.VectorWeight)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirador.yaml")
	data := []byte("server:\n  port: 9090\nprefs:\n  vector_weight: 0.5\ndigest:\n  schedule: \"30 6 * * *\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Prefs.VectorWeight != 0.5 {
		t.Errorf("vector_weight = %v, want 0.5", cfg.Prefs.VectorWeight)
	}
	if cfg.Digest.Schedule != "30 6 * * *" {
		t.Errorf("schedule = %q, want %q", cfg.Digest.Schedule, "30 6 * * *")
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("untouched host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadEnvOverridesAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirador.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MIRADOR_SERVER_PORT", "7000")
	t.Setenv("MIRADOR_PREFS_LIKE_WEIGHT", "2.5")
	t.Setenv("MIRADOR_LOGGING_LEVEL", "debug")
	t.Setenv("MIRADOR_STORAGE_EVENT_TTL", "24h")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, want env override 7000", cfg.Server.Port)
	}
	if cfg.Prefs.LikeWeight != 2.5 {
		t.Errorf("like_weight = %v, want 2.5", cfg.Prefs.LikeWeight)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Storage.EventTTL != 24*time.Hour {
		t.Errorf("event_ttl = %v, want 24h", cfg.Storage.EventTTL)
	}
}

func TestLoadRejectsInvalidEnvValue(t *testing.T) {
	t.Setenv("MIRADOR_SERVER_PORT", "99999")
	if _, err := loadWithoutFile(t); err == nil {
		t.Fatal("expected validation error for out-of-range port")
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MIRADOR_SERVER_PORT", "server.port"},
		{"MIRADOR_PREFS_VECTOR_WEIGHT", "prefs.vector_weight"},
		{"MIRADOR_STORAGE_GC_DISCARD_RATIO", "storage.gc_discard_ratio"},
		{"MIRADOR_CONFIG", ""},
		{"MIRADOR_UNRELATED_THING", ""},
	}
	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// loadWithoutFile calls Load from a directory with no mirador.yaml so
// only defaults and the test's env vars apply.
func loadWithoutFile(t *testing.T) (*Config, error) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return Load()
}
