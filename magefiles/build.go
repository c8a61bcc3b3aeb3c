//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Build targets for yardstick.
//
// Usage:
//
//	mage build           Compile the yardstick binary to bin/
//	mage test:all        Run every test
//	mage test:unit       Run tests without the race detector or coverage
//	mage test:cover      Run tests with coverage, writing bin/coverage.out
//	mage lint            Run golangci-lint
//	mage vet             Run go vet
//	mage smoke           Build and run sample commands against a temp data dir
//	mage clean           Remove build artifacts
//	mage install         Install yardstick to GOPATH/bin
//	mage stats           Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "yardstick"
	binaryDir  = "bin"
	cmdDir     = "./cmd/yardstick"
)

// Build compiles the yardstick binary to bin/.
func Build() error {
	mg.Deps(ensureBinDir)
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Smoke builds the binary and runs a few conversions through it.
func Smoke() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	tmp, err := os.MkdirTemp("", "yardstick-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	env := map[string]string{
		"YARDSTICK_CONFIG_DIR": filepath.Join(tmp, "config"),
		"YARDSTICK_DATA_DIR":   filepath.Join(tmp, "data"),
	}
	runs := [][]string{
		{"version"},
		{"init"},
		{"convert", "1.05m", "in"},
		{"format", "89.25in"},
		{"calc", "3ft", "+", "4in", "--save"},
		{"log", "list"},
	}
	for _, args := range runs {
		if err := sh.RunWithV(env, bin, args...); err != nil {
			return err
		}
	}
	return nil
}

func ensureBinDir() error {
	return os.MkdirAll(binaryDir, 0o755)
}
