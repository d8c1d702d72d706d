// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for driftchat.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChats
	CmdExport
	CmdConfig
	CmdReset
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON       bool   // Output in JSON format
	ConfigPath string // Explicit config file (--config)

	// Command-specific
	ChatID     string // export: which chat
	Format     string // export: "markdown" or "json"
	OutputDir  string // export: destination directory
	Subcommand string // config: "show" or "path"
	Confirm    bool   // reset: --yes

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `driftchat - terminal chat workspace with folders, agents, and streaming

Usage:
  driftchat                      Start TUI (default)
  driftchat chats                List chats with folders and message counts
  driftchat export <chat-id>     Export one chat to a file
  driftchat config [show|path]   Show effective configuration
  driftchat reset --yes          Discard the persisted snapshot
  driftchat version              Show version information
  driftchat help                 Show this help

Global flags:
  --json                Machine-readable output where supported
  --config <path>       Load configuration from a specific file

Export flags:
  --format <fmt>        "markdown" (default) or "json"
  --output <dir>        Destination directory (default: current directory)

Environment:
  DRIFTCHAT_DATA_DIR              Override the data directory
  DRIFTCHAT_THEME                 Force "dark" or "light"
  DRIFTCHAT_SEED_SAMPLE_DATA      Enable or disable first-run samples
  DRIFTCHAT_FRAGMENT_INTERVAL_MS  Streaming fragment pacing
`

// PrintUsage prints command usage to stdout.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("driftchat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments. Split out from Parse so tests
// can drive it directly.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "chats", "list":
		return CmdChats, args

	case "export":
		parseExportArgs(&args, remaining)
		return CmdExport, args

	case "config":
		if len(remaining) > 0 {
			args.Subcommand = strings.ToLower(remaining[0])
		}
		return CmdConfig, args

	case "reset":
		return CmdReset, args

	case "version", "-V", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args

	default:
		// Unknown commands fall through to help rather than guessing.
		return CmdHelp, args
	}
}

// parseGlobalFlags strips flags that apply to every command.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	args := Args{Format: "markdown", OutputDir: "."}

	i := 0
	for i < len(argv) {
		arg := argv[i]

		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "--yes" || arg == "-y":
			args.Confirm = true
		case arg == "--config":
			if i+1 < len(argv) {
				i++
				args.ConfigPath = argv[i]
			}
		case strings.HasPrefix(arg, "--config="):
			args.ConfigPath = strings.TrimPrefix(arg, "--config=")
		default:
			remaining = append(remaining, arg)
		}
		i++
	}

	return remaining, args
}

// parseExportArgs parses export command specific arguments.
func parseExportArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch {
		case arg == "--format":
			if i+1 < len(remaining) {
				i++
				args.Format = strings.ToLower(remaining[i])
			}
		case strings.HasPrefix(arg, "--format="):
			args.Format = strings.ToLower(strings.TrimPrefix(arg, "--format="))
		case arg == "--output" || arg == "-o":
			if i+1 < len(remaining) {
				i++
				args.OutputDir = remaining[i]
			}
		case strings.HasPrefix(arg, "--output="):
			args.OutputDir = strings.TrimPrefix(arg, "--output=")
		case !strings.HasPrefix(arg, "-") && args.ChatID == "":
			args.ChatID = arg
		}
		i++
	}
}
