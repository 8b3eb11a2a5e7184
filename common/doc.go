// Package common provides shared constants, types, utilities, and interfaces
// used throughout the XFCE Gala Settings application.
//
// This package serves as the foundation for cross-cutting concerns:
//
//   - Constants: Application metadata, session config locations, backend names
//   - Errors: Sentinel errors for the startup, config file and apply paths
//   - Interfaces: Seams for command execution and notifications
//   - Logger: Leveled logging with optional rotated file output
//   - Utils: File helpers and the os/exec command runner
//
// # Usage
//
//	// Use logger
//	common.LogInfo("Configured window manager: %s", choice)
//
//	// Check errors
//	if errors.Is(err, common.ErrProcessSpawnFailed) {
//	    // Config was written, only the live switch failed
//	}
package common
