/*
Package log provides structured logging for chainsaw using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with context-specific child loggers, configurable log levels, and helper
functions for common logging patterns. All logs include timestamps and
support filtering by severity level for production debugging.

# Architecture

	┌──────────────────── LOGGING SYSTEM ──────────────────────┐
	│                                                            │
	│  ┌────────────────────────────────────────────┐          │
	│  │            Global Logger                    │          │
	│  │  - Zerolog instance                         │          │
	│  │  - Initialized via log.Init()               │          │
	│  │  - Thread-safe for concurrent use           │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │           Configuration                     │          │
	│  │  - Level: debug/info/warn/error             │          │
	│  │  - Format: JSON or console (human)          │          │
	│  │  - Output: stdout, file, or custom writer   │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Child Loggers                    │          │
	│  │  - WithComponent("httpapi")                 │          │
	│  │  - WithNamespace("photos")                  │          │
	│  │  - WithOperation("insert")                  │          │
	│  │  - WithRequestID("3f9e...")                 │          │
	│  └──────────────────┬─────────────────────────┘          │
	│                     │                                      │
	│  ┌──────────────────▼─────────────────────────┐          │
	│  │            Log Output                       │          │
	│  │                                              │          │
	│  │  JSON Format:                               │          │
	│  │  {                                           │          │
	│  │    "level": "info",                         │          │
	│  │    "namespace": "photos",                   │          │
	│  │    "time": "2026-07-31T10:30:00Z",         │          │
	│  │    "message": "blob inserted"               │          │
	│  │  }                                           │          │
	│  │                                              │          │
	│  │  Console Format:                            │          │
	│  │  2026-07-31T10:30:00Z INF blob inserted     │          │
	│  │    namespace=photos                          │          │
	│  └────────────────────────────────────────────┘           │
	└────────────────────────────────────────────────────────┘

# Core Components

Global Logger:
  - Package-level zerolog.Logger instance
  - Initialized once via log.Init()
  - Accessible from all chainsaw packages
  - Thread-safe concurrent writes

Child loggers:
  - WithComponent attaches a "component" field (e.g. "httpapi", "kv")
  - WithNamespace attaches a "namespace" field naming the namespace a
    log line concerns
  - WithOperation attaches an "op" field naming the call in progress
    ("insert", "query", "prune", ...)
  - WithRequestID attaches a "request_id" field, set by pkg/httpapi's
    request-ID middleware for per-request correlation across log lines

# Usage

Initialize once at startup, typically in cmd/chainsawd's cobra.OnInitialize
hook:

	log.Init(log.Config{
	    Level:      log.InfoLevel,
	    JSONOutput: true,
	})

Then log from any package:

	log.Info("chainsaw started")
	logger := log.WithNamespace("photos")
	logger.Info().Int("count", n).Msg("blobs inserted")
*/
package log
