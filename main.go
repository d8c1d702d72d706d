// driftchat - A terminal chat workspace with folders, agents, and
// simulated streaming.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/jeranaias/driftchat-tui/internal/cli"
	"github.com/jeranaias/driftchat-tui/internal/config"
	"github.com/jeranaias/driftchat-tui/internal/state"
	"github.com/jeranaias/driftchat-tui/internal/storage"
	"github.com/jeranaias/driftchat-tui/internal/store"
	"github.com/jeranaias/driftchat-tui/internal/stream"
	"github.com/jeranaias/driftchat-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := loadConfig(args)
	if err != nil {
		fatal(err)
	}

	switch cmd {
	case cli.CmdTUI:
		runTUI(args, cfg)

	case cli.CmdChats:
		snap, closeFn, err := loadSnapshot(cfg)
		if err != nil {
			fatal(err)
		}
		defer closeFn()
		if err := cli.HandleChats(os.Stdout, snap, args.JSON); err != nil {
			fatal(err)
		}

	case cli.CmdExport:
		snap, closeFn, err := loadSnapshot(cfg)
		if err != nil {
			fatal(err)
		}
		defer closeFn()
		if err := cli.HandleExport(os.Stdout, snap, args); err != nil {
			fatal(err)
		}

	case cli.CmdConfig:
		if err := cli.HandleConfig(os.Stdout, cfg, args); err != nil {
			fatal(err)
		}

	case cli.CmdReset:
		kv, err := storage.OpenKV(cfg.SnapshotDBPath())
		if err != nil {
			fatal(err)
		}
		defer kv.Close()
		if err := cli.HandleReset(os.Stdout, storage.NewCodec(kv), args); err != nil {
			fatal(err)
		}

	case cli.CmdVersion:
		cli.PrintVersion()

	case cli.CmdHelp:
		cli.PrintUsage()

	default:
		runTUI(args, cfg)
	}
}

// loadConfig resolves the effective configuration, honoring an explicit
// --config path.
func loadConfig(args cli.Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		return config.LoadFromPath(args.ConfigPath)
	}
	return config.Load()
}

// loadSnapshot opens the snapshot database and decodes the persisted
// state for one-shot commands. A missing snapshot yields the empty
// state rather than an error.
func loadSnapshot(cfg *config.Config) (state.AppState, func(), error) {
	kv, err := storage.OpenKV(cfg.SnapshotDBPath())
	if err != nil {
		return state.AppState{}, nil, err
	}

	snap, err := storage.NewCodec(kv).Load()
	if err != nil {
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			return state.NewAppState(), func() { kv.Close() }, nil
		}
		kv.Close()
		return state.AppState{}, nil, err
	}
	return snap, func() { kv.Close() }, nil
}

// runTUI wires the store, the stream channel, and the config watcher,
// then hands control to Bubble Tea.
func runTUI(args cli.Args, cfg *config.Config) {
	logger, logClose := openLogger(cfg)
	defer logClose()

	kv, err := storage.OpenKV(cfg.SnapshotDBPath())
	if err != nil {
		fatal(err)
	}
	defer kv.Close()

	opts := []store.Option{
		store.WithErrorSink(func(err error) {
			logger.Printf("store: %v", err)
		}),
	}
	if cfg.SeedSampleData {
		seed := state.SampleState(state.NewReducer())
		seed.DarkMode = termenv.HasDarkBackground()
		opts = append(opts, store.WithDefaultState(seed))
	}
	st := store.New(storage.NewCodec(kv), opts...)
	defer st.Close()

	channel := stream.NewChannelWithConfig(stream.Config{
		ConnectDelay:     cfg.ConnectDelay(),
		FragmentInterval: cfg.FragmentInterval(),
	})
	defer channel.Close()

	p := tea.NewProgram(ui.New(st, channel, cfg), tea.WithAltScreen())

	// Reload the config file live while the TUI runs. Stream timings
	// apply on the next start; theme and rendering apply immediately.
	if path := configWatchPath(args); path != "" {
		w, err := config.NewWatcher(path, func(c *config.Config) {
			p.Send(ui.ConfigReloadedMsg{Config: c})
		})
		if err != nil {
			logger.Printf("config watcher: %v", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fatal(fmt.Errorf("running driftchat: %w", err))
	}
}

// configWatchPath returns the config file to watch, or "" when none
// exists yet.
func configWatchPath(args cli.Args) string {
	if args.ConfigPath != "" {
		return args.ConfigPath
	}
	if path, err := config.ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return path
		}
	}
	if path, err := config.ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return path
		}
	}
	return ""
}

// openLogger opens the application log file. The TUI owns the terminal,
// so diagnostics go to the log instead of stderr.
func openLogger(cfg *config.Config) (*log.Logger, func()) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err == nil {
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			return log.New(f, "", log.LstdFlags), func() { f.Close() }
		}
	}
	return log.New(os.Stderr, "", log.LstdFlags), func() {}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
