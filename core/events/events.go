package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Well known event names.
const (
	DriftDetected       = "inventory.drift_detected"
	InventorySkipped    = "inventory.provisioning_skipped"
	ConfigHashRepaired  = "variants.config_hash_repaired"
	ConfigHashCollision = "variants.config_hash_collision"
	VariantsGenerated   = "variants.generated"
)

// Event is a single notification.
type Event struct {
	Name   string         `json:"name"`
	At     time.Time      `json:"at"`
	Fields map[string]any `json:"fields,omitempty"`
}

// New builds an event stamped with the current time.
func New(name string, fields map[string]any) Event {
	return Event{Name: name, At: time.Now().UTC(), Fields: fields}
}

// Sink receives events. Implementations must be safe for concurrent use and
// must not block the caller for long.
type Sink interface {
	Emit(ctx context.Context, e Event)
}

type nopSink struct{}

func (nopSink) Emit(context.Context, Event) {}

// Nop returns a sink that drops every event.
func Nop() Sink {
	return nopSink{}
}

// LogSink writes events to a zap logger.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink backed by the given logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger.Named("events")}
}

// Emit logs the event with its fields flattened.
func (s *LogSink) Emit(_ context.Context, e Event) {
	fields := make([]zap.Field, 0, len(e.Fields)+2)
	fields = append(fields, zap.String("event", e.Name), zap.Time("at", e.At))
	for k, v := range e.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	s.logger.Info("Event emitted", fields...)
}

// Recorder keeps every emitted event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Named returns recorded events with the given name.
func (r *Recorder) Named(name string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the recorder.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

type multiSink []Sink

func (m multiSink) Emit(ctx context.Context, e Event) {
	for _, s := range m {
		s.Emit(ctx, e)
	}
}

// Multi fans out to all given sinks, skipping nil entries.
func Multi(sinks ...Sink) Sink {
	var out multiSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
