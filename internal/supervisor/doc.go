// Mirador - Creator Feed Tracking and Preference-Ranked Digest
// Copyright 2026 T. Ovren (tovren)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tovren/mirador

/*
Package supervisor builds the suture service tree that runs Mirador.

# Tree Layout

The tree has a root supervisor with three child supervisors, one per
concern, so a crashing background job never takes the API down with it:

	mirador (root)
	├── data-layer      badger value-log GC
	├── jobs-layer      digest scheduler
	└── api-layer       HTTP server

Services are plain suture.Service implementations. Long-running
components that already expose Serve(ctx) (the digest scheduler) are
added directly; components with other lifecycles are adapted by the
wrappers in this package:

  - HTTPServerService bridges http.Server's blocking ListenAndServe to
    suture's context-driven Serve, with graceful Shutdown on cancel.
  - GCService runs the store's value-log garbage collection on a ticker.

Suture restarts a failed service with exponential backoff; supervisor
events are logged through sutureslog into the zerolog pipeline.
*/
package supervisor
