// Package main provides the entry point for the caseatlas CLI tool.
package main

import (
	"github.com/caseatlas/caseatlas/cmd/caseatlas/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
