// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this package only
// defines the settings it needs: listen port, API key and request timeouts.
package server
