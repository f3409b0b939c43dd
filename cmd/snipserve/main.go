// Copyright 2026 The Snipserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package main implements the suggestion synthesis server and CLI [DBG] application.
//
// Note: This is a BETA release. APIs and functionality may rapidly change.
//
// Snipserve turns ranked raw candidates from an external generation service
// into concrete, snippet-safe editor suggestions. It enforces per-document
// suppression rules, bounds how many candidates are surfaced, and builds each
// retained candidate into an insertable item with a precise replacement range.
// It runs as a JSON-lines IPC server for editor integration, or as a CLI
// application for testing and debugging.
//
// # Usage
//
// Start the server against an external generation service:
//
// 	snipserve -provider "/path/to/genservice --stdio"
//
// Use a custom config and enable debug mode:
//
// 	snipserve -config /path/to/config.toml -d
//
// Run in CLI mode with the builtin trie provider seeded from a token file:
//
// 	snipserve -c -tokens tokens.txt
//
// # Configuration
//
// Runtime configuration is managed through a TOML file covering suppression
// rules, capability toggles and the result ceiling:
//
// 	[engine]
// 	max_results = 5
//
// 	[suppress]
// 	line_regexes = ['^\s*//']
// 	file_regexes = ['\.lock$']
//
// 	[capabilities]
// 	one_suggestion = false
// 	two_suggestions = false
// 	onboarding_marker = false
// 	auto_import = true
//
// 	[server]
// 	reload_on_change = true
//
// The config file is automatically created with defaults if it doesn't exist.
// With reload_on_change enabled, the server picks up edits without restart.
//
// # IPC Protocol
//
// The editor side speaks newline-delimited JSON over stdin/stdout:
//
// 	{"id": "c1", "command": "complete", "path": "a.go", "text": "fmt.Pr", "offset": 6}
//
// and receives the synthesized items in response order:
//
// 	{"id": "c1", "items": [{"label": "Println", "sort_key": " 00", ...}], "count": 1, "t": 3}
//
// The provider side speaks msgpack to the generation service process; see the
// provider package for the wire contract.
//
// # Command Line Flags
//
// The following flags control application behavior:
//
// 	-provider string
// 	    Command line of the external generation service to launch
// 	-config string
// 	    Path to a config.toml (default: user config dir)
// 	-tokens string
// 	    Token file for the builtin trie provider (CLI/testing)
// 	-path string
// 	    File path reported to the suppression rules in CLI mode (default "buffer.txt")
// 	-d  Enable debug mode with detailed logging
// 	-c  Run in CLI mode instead of server mode
// 	-version
// 	    Show current version
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kballard/go-shellquote"

	"github.com/snipserve/snipserve/internal/cli"
	"github.com/snipserve/snipserve/pkg/config"
	"github.com/snipserve/snipserve/pkg/engine"
	"github.com/snipserve/snipserve/pkg/provider"
	"github.com/snipserve/snipserve/pkg/server"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "snipserve"
	gh      = "https://github.com/snipserve/snipserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// printVersion renders the version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["repo"] = lipgloss.NewStyle().Faint(true)
	logger.SetStyles(styles)

	logger.Info(AppName, "version", Version, "repo", gh)
}

// buildProvider picks the candidate source: an external generation
// service when -provider is given, otherwise the builtin trie.
func buildProvider(providerCmd, tokenFile string) (provider.Provider, error) {
	if providerCmd != "" {
		words, err := shellquote.Split(providerCmd)
		if err != nil || len(words) == 0 {
			return nil, fmt.Errorf("bad -provider command %q: %v", providerCmd, err)
		}
		return provider.NewIPCProvider(words[0], words[1:]...)
	}

	trie := provider.NewTrieProvider()
	if tokenFile != "" {
		if err := trie.LoadTokenFile(tokenFile); err != nil {
			return nil, fmt.Errorf("loading token file %s: %w", tokenFile, err)
		}
		log.Debugf("Trie provider ready with %d tokens", trie.TokenCount())
	} else {
		log.Warn("No -provider and no -tokens given; the builtin provider is empty")
	}
	return trie, nil
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to config.toml")
	providerCmd := flag.String("provider", "", "Command line of the generation service to launch")
	tokenFile := flag.String("tokens", "", "Token file for the builtin trie provider")
	bufferPath := flag.String("path", "buffer.txt", "File path reported to suppression rules in CLI mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		return
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Errorf("Config: %v", err)
		os.Exit(1)
	}
	settings := cfg.Compile()

	prov, err := buildProvider(*providerCmd, *tokenFile)
	if err != nil {
		log.Errorf("Provider: %v", err)
		os.Exit(1)
	}
	if closer, ok := prov.(*provider.IPCProvider); ok {
		defer closer.Close()
	}

	if *cliMode {
		eng := engine.New(prov, settings)
		handler := cli.NewInputHandler(eng, *bufferPath)
		if err := handler.Start(); err != nil {
			log.Errorf("CLI: %v", err)
			os.Exit(1)
		}
		return
	}

	srv := server.NewServer(prov, settings, activePath)
	if cfg.Server.ReloadOnChange && activePath != "" {
		watcher, err := srv.WatchConfig(activePath)
		if err != nil {
			log.Warnf("Config watching disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}
	if err := srv.Start(); err != nil {
		log.Errorf("Server: %v", err)
		os.Exit(1)
	}
}
