// Package main is the single-binary entrypoint for tend: the kiosk UI,
// the task CLI and the HTTP API server in one executable.
package main

import "github.com/mlasch/tend/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
