// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands for driftchat.
//
// # Key Types
//
//   - Command: enumeration of available CLI commands
//   - Args: parsed command-line arguments
//
// # Usage
//
// Parse and dispatch:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdTUI:
//	    // launch the interactive UI
//	case cli.CmdChats:
//	    return cli.HandleChats(os.Stdout, st.State(), args.JSON)
//	}
//
// The default command with no arguments is the TUI; everything else is
// a one-shot command that loads the snapshot, prints, and exits.
package cli
