// Package main is the entry point for the centre CLI.
package main

import (
	"fmt"
	"os"

	"github.com/quvia/centre/internal/app"
	"github.com/quvia/centre/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// The init command must work before any data directory exists.
	if canRunWithoutContainer(os.Args[1:]) {
		return cli.NewRootCommand(nil, version).Execute()
	}

	container, err := app.New()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer container.Close()

	return cli.NewRootCommand(container, version).Execute()
}

func canRunWithoutContainer(args []string) bool {
	if len(args) == 0 {
		return true
	}
	switch args[0] {
	case "init", "help":
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
