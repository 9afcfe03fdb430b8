// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

// Package config loads and validates Mirador configuration.
//
// Configuration is layered with koanf v2, later layers overriding earlier:
//
//  1. Built-in defaults (structs provider)
//  2. Optional YAML config file (MIRADOR_CONFIG or the default search paths)
//  3. Environment variables with the MIRADOR_ prefix
//
// Environment variable names map onto nested keys by replacing the first
// underscore-separated segment with a section, e.g.
//
//	MIRADOR_SERVER_PORT        -> server.port
//	MIRADOR_PREFS_VECTOR_WEIGHT -> prefs.vector_weight
//	MIRADOR_DIGEST_SCHEDULE     -> digest.schedule
//
// Validation combines go-playground/validator struct tags with semantic
// checks (weight signs, cron schedule syntax) in Config.Validate.
package config
