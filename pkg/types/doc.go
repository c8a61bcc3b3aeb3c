// Package types defines the configuration, logbook entity, Logbook interface,
// and standard errors shared by the yardstick backends and CLI.
package types
