// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are constructed once at startup with their dependencies
// injected and are safe for concurrent use.
package services
