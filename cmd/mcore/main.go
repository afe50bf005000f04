package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/mcore"
	"github.com/agiangrant/mcore/cmd/mcore/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "check":
		err = commands.Check(args, os.Stdout)
	case "defaults":
		err = commands.Defaults(args, os.Stdout)
	case "preview":
		err = commands.Preview(args, os.Stdout)
	case "version", "-v", "--version":
		fmt.Printf("mcore version %s\n", mcore.Version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mcore - immediate-mode UI engine tools

Usage: mcore <command> [options]

Commands:
  check <config>   Validate a TOML or YAML config file
  defaults         Print the default configuration
  preview          Render a sample frame headlessly and summarize it
  version          Print version information
  help             Show this help message

Examples:
  mcore defaults --format yaml > mcore.yaml
  mcore check mcore.toml
  mcore check --engine mcore.toml   Also load the native engine library
  mcore preview --config mcore.toml`)
}
