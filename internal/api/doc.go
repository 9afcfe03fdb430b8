// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

/*
Package api provides Mirador's HTTP surface using the chi router.

Routes:

	POST /api/v1/feedback               submit one like/dislike
	POST /api/v1/feedback/batch         submit an ordered event batch
	GET  /api/v1/feed                   ranked live feed
	GET  /api/v1/items/{itemID}         stored features of one item
	GET  /api/v1/items/{itemID}/score   blended ranking score
	PUT  /api/v1/items/{itemID}/analysis  analyzer pushes attributes+embedding
	GET  /api/v1/preferences            learned attribute preferences
	GET  /api/v1/digest/preview         build a digest on demand
	GET  /healthz                       liveness
	GET  /metrics                       Prometheus exposition

Every response uses the APIResponse envelope. Feedback endpoints are
rate limited with httprate and CORS-enabled for the feedback web page,
which runs on a separate origin. A feedback submission's outcome
(including ok=false for unanalyzed items) is reported in the body with
status 200; HTTP error codes are reserved for malformed requests and
storage failures.
*/
package api
