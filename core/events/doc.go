// Package events provides the notification sink used by catalog operations to
// announce notable outcomes (drift detected, hash repaired, inventory skipped).
//
// A Sink is injected into each service instead of being a process wide emitter,
// so tests can observe exactly the events their own run produced.
//
// # Sinks
//
//   - LogSink writes every event as a structured zap entry.
//   - Recorder keeps events in memory; intended for tests and dry runs.
//   - Multi fans out to several sinks.
//   - Nop discards everything.
package events
