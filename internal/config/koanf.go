// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variables before mapping them
// onto config keys.
const envPrefix = "MIRADOR_"

// sections are the top-level config namespaces an environment variable
// can target. The first underscore-delimited token after the prefix
// selects the section; the remainder is the key within it.
var sections = map[string]bool{
	"logging": true,
	"server":  true,
	"storage": true,
	"prefs":   true,
	"digest":  true,
	"api":     true,
}

// defaultConfigPaths are searched in order when MIRADOR_CONFIG is unset.
var defaultConfigPaths = []string{
	"mirador.yaml",
	"/etc/mirador/mirador.yaml",
}

// Load builds the configuration by layering, in order of increasing
// precedence: compiled defaults, an optional YAML file, and MIRADOR_
// environment variables. The result is validated before being returned.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("MIRADOR_CONFIG"))
}

// LoadFile is Load with an explicit config file path. An empty path
// falls back to the default search locations; a missing file at a
// default location is not an error, but an explicit path must exist.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := path != ""
	candidates := defaultConfigPaths
	if explicit {
		candidates = []string{path}
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			if explicit {
				return nil, fmt.Errorf("config file %s: %w", p, err)
			}
			continue
		}
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
		break
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envTransform maps MIRADOR_SECTION_SOME_KEY to section.some_key.
// Variables whose first token is not a known section are skipped so
// unrelated MIRADOR_ variables (like MIRADOR_CONFIG) do not collide
// with config keys.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, rest, found := strings.Cut(s, "_")
	if !found || !sections[section] {
		return ""
	}
	return section + "." + rest
}
