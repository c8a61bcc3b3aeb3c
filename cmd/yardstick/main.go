// Package main provides the yardstick CLI.
package main

import "github.com/mesh-intelligence/yardstick/internal/cli"

func main() {
	cli.Execute()
}
