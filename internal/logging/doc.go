// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

// Package logging provides centralized zerolog-based logging for Mirador.
//
// All packages log through this package so that output format, level, and
// context propagation are configured in exactly one place:
//
//   - Zero-allocation structured logging via rs/zerolog
//   - JSON output for production, console output for development
//   - Correlation-ID propagation through context.Context
//   - An slog.Handler adapter so libraries that want *slog.Logger
//     (the supervision tree) still write through zerolog
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("item_id", id).Msg("analysis stored")
//	logging.Ctx(ctx).Warn().Msg("no embedding for liked item")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated chain
// is silently dropped by zerolog.
package logging
