// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for chat-gpt-reader.
package cli

import (
	"fmt"
	"os"
	"runtime"
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
	CmdPrint Command = iota
	CmdPreview
	CmdParse
	CmdFormats
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose    bool
	JSON       bool
	NoColor    bool
	Locale     string
	ConfigPath string

	// Transcript input
	File            string
	Format          string
	UserPrefix      string
	AssistantPrefix string
	Pick            bool

	// Visibility
	HideUser      bool
	HideAssistant bool
	Headers       bool
	NoHeaders     bool

	// Output
	Title  string
	Stdout bool
	As     string
	Pager  bool

	// config subcommands
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `chat-gpt-reader - print plain-text chat transcripts

Splits a copied chat session into user and assistant turns using a chat
format, then prints it through your browser's print dialog.

Usage:
  chat-gpt-reader print <file>          Print a transcript (default command)
  chat-gpt-reader preview <file>        Show the transcript in the terminal
  chat-gpt-reader parse <file>          Write the parsed turns to stdout
  chat-gpt-reader formats               List chat formats
  chat-gpt-reader config [subcommand]   Configuration
  chat-gpt-reader version               Show version
  chat-gpt-reader help                  Show this help

Transcript Options (print, preview, parse):
  -f, --format ID             Chat format (see 'formats')
  --user-prefix TEXT          User prefix (required for --format custom)
  --assistant-prefix TEXT     Assistant prefix (required for --format custom)
  --pick                      Choose the format interactively
  --hide-user                 Leave out user turns
  --hide-assistant            Leave out assistant turns

Print Options:
  -t, --title TEXT            Page title
  --headers                   Always show role headers
  --no-headers                Never show role headers
  --stdout                    Write the page to stdout instead of a browser

Preview Options:
  --pager                     Scroll the preview in a pager

Parse Options:
  --as json|markdown|html     Output rendition (default: json)

Config Commands:
  chat-gpt-reader config show           Show the effective configuration
  chat-gpt-reader config path           Show the config file path
  chat-gpt-reader config init           Write a default config file
  chat-gpt-reader config get <key>      Show one setting
  chat-gpt-reader config set <key> <v>  Change one setting

Global Flags:
  -v, --verbose               Log print lifecycle to stderr
  --json                      JSON output (formats, config show, version)
  --no-color                  Disable colored output
  --locale CODE               Interface language (en, zh-tw, auto)
  --config FILE               Use this config file

Files:
  Text transcripts must end in .txt or .text. JSON files produced by
  'parse' (optionally with timestamps) are accepted as well.

Examples:
  chat-gpt-reader session.txt
  chat-gpt-reader print session.txt --format claude --title "Design review"
  chat-gpt-reader print notes.txt -f custom --user-prefix Q: --assistant-prefix A:
  chat-gpt-reader preview session.txt --hide-user --pager
  chat-gpt-reader parse session.txt --as markdown > session.md
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("chat-gpt-reader %s\n", Version)
	fmt.Printf("  Commit:  %s\n", GitCommit)
	fmt.Printf("  Built:   %s\n", BuildDate)
	fmt.Printf("  Go:      %s\n", runtime.Version())
}

// Parse parses os.Args into a command and its arguments.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given arguments (without the program name).
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	parsedArgs.Raw = rest

	switch cmd {
	case "print", "p":
		parseTranscriptArgs(&parsedArgs, rest)
		return CmdPrint, parsedArgs

	case "preview", "show", "view":
		parseTranscriptArgs(&parsedArgs, rest)
		return CmdPreview, parsedArgs

	case "parse":
		parseTranscriptArgs(&parsedArgs, rest)
		return CmdParse, parsedArgs

	case "formats", "format":
		return CmdFormats, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, rest)
		return CmdConfig, parsedArgs

	case "version":
		return CmdVersion, parsedArgs

	case "help":
		return CmdHelp, parsedArgs

	default:
		// A bare file name prints it.
		parseTranscriptArgs(&parsedArgs, remaining)
		parsedArgs.Raw = remaining
		return CmdPrint, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--no-color":
			parsedArgs.NoColor = true
		case "-h", "--help":
			return nil, parsedArgs
		case "--version":
			return []string{"version"}, parsedArgs
		case "--locale", "--config":
			if i+1 < len(args) {
				i++
				setGlobalValue(&parsedArgs, arg, args[i])
			}
		default:
			if name, value, ok := splitFlag(arg, "--locale", "--config"); ok {
				setGlobalValue(&parsedArgs, name, value)
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

func setGlobalValue(args *Args, name, value string) {
	switch name {
	case "--locale":
		args.Locale = strings.ToLower(value)
	case "--config":
		args.ConfigPath = value
	}
}

// parseTranscriptArgs parses the flags shared by print, preview and parse.
// The first positional argument is the file.
func parseTranscriptArgs(args *Args, remaining []string) {
	valueFlags := []string{"--format", "--user-prefix", "--assistant-prefix", "--title", "--as"}

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		switch arg {
		case "-f", "--format", "--user-prefix", "--assistant-prefix", "-t", "--title", "--as":
			if i+1 < len(remaining) {
				i++
				setTranscriptValue(args, arg, remaining[i])
			}
		case "--pick":
			args.Pick = true
		case "--hide-user":
			args.HideUser = true
		case "--hide-assistant":
			args.HideAssistant = true
		case "--headers":
			args.Headers = true
		case "--no-headers":
			args.NoHeaders = true
		case "--stdout":
			args.Stdout = true
		case "--pager":
			args.Pager = true
		default:
			if name, value, ok := splitFlag(arg, valueFlags...); ok {
				setTranscriptValue(args, name, value)
			} else if args.File == "" && (arg == "-" || !strings.HasPrefix(arg, "-")) {
				args.File = arg
			}
		}
	}
}

func setTranscriptValue(args *Args, name, value string) {
	switch name {
	case "-f", "--format":
		args.Format = strings.ToLower(value)
	case "--user-prefix":
		args.UserPrefix = value
	case "--assistant-prefix":
		args.AssistantPrefix = value
	case "-t", "--title":
		args.Title = value
	case "--as":
		args.As = strings.ToLower(value)
	}
}

// splitFlag recognizes --name=value for any of names.
func splitFlag(arg string, names ...string) (string, string, bool) {
	for _, name := range names {
		if strings.HasPrefix(arg, name+"=") {
			return name, strings.TrimPrefix(arg, name+"="), true
		}
	}
	return "", "", false
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = strings.ToLower(remaining[0])
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = strings.Join(remaining[2:], " ")
		}
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// NOTE: HandlePrint is implemented in print_cmd.go
// NOTE: HandlePreview is implemented in preview_cmd.go
// NOTE: HandleParse is implemented in parse_cmd.go
// NOTE: HandleFormats is implemented in formats_cmd.go
// NOTE: HandleConfig is implemented in config.go

// VersionData is the JSON shape of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion handles the "version" command.
func HandleVersion(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		_ = NewJSONResponse("version", data).Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
