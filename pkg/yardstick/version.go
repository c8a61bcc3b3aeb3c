// Package yardstick holds module-wide metadata.
package yardstick

// Version is the yardstick release version.
const Version = "0.1.0"
