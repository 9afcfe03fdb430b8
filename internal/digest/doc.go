// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

/*
Package digest builds the daily preference-ranked digest.

Builder enumerates stored items, ranks them through the scoring engine
and keeps the configured top N. A Deliverer ships the result; email
rendering and transport live outside this repository, so the in-tree
LogDeliverer only records what would have been sent. Scheduler runs
Build and Deliver on a cron schedule under the supervision tree; a
failed build is logged and counted, never fatal.
*/
package digest
