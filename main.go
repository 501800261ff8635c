// chat-gpt-reader - Print plain-text chat transcripts through the browser.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"os"

	"github.com/PoChenKuo/chat-gpt-reader/internal/cli"
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
	// Parse CLI arguments
	cmd, args := cli.Parse()

	// Commands that need no configuration
	switch cmd {
	case cli.CmdVersion:
		cli.HandleVersion(args)
		return
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	}

	app, err := cli.NewApp(args)
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}

	// Route to appropriate handler
	switch cmd {
	case cli.CmdPrint:
		err = cli.HandlePrint(app)
	case cli.CmdPreview:
		err = cli.HandlePreview(app)
	case cli.CmdParse:
		err = cli.HandleParse(app)
	case cli.CmdFormats:
		err = cli.HandleFormats(app)
	case cli.CmdConfig:
		err = cli.HandleConfig(app)
	}

	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
	os.Exit(cli.ExitSuccess)
}
