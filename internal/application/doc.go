// Package application provides dependency wiring for the serve command.
// It builds the snapshot store, API handlers, router and HTTP server from a
// resolved build configuration, keeping the main package focused on CLI
// parsing and orchestration.
package application
