// Package main is the entry point for the boulanger CLI.
package main

import (
	"fmt"
	"os"

	"github.com/boulangers/boulanger/internal/app"
	"github.com/boulangers/boulanger/internal/cli"
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
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Create dependency injection container
	container, err := app.New(cwd)
	if err != nil {
		// A broken config file must not block help, version or the template
		if canRunWithoutConfig(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).Execute()
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	// Create and execute root command
	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.Execute()
}

// canRunWithoutConfig reports whether args select a command that needs no configuration.
func canRunWithoutConfig(args []string) bool {
	if len(args) >= 2 && args[0] == "config" && args[1] == "template" {
		return true
	}
	if len(args) > 0 && args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
