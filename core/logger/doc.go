// Package logger builds the zap logger used across the service.
//
// New selects a development or production base config from the level and a
// json or console encoder from the format.
//
// # Request scope
//
// WithRayID attaches the request's ray id (set by core/middleware/rayid).
// The request middleware stores that logger in the request context with
// IntoContext, and services pick it up with FromContext, so generation and
// reconciliation logs carry the ray id of the call that triggered them.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a service method:
//	l := logger.FromContext(ctx, s.logger)
//	l.Warn("Retrying", zap.Error(err))
package logger
