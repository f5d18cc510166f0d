/*
Package main is the entry point for the vendornexus CLI.

Usage:

	vendornexus [command]

Available Commands:

	serve       Run the HTTP server (webhook, UI API, vault)
	poll        Run the Telegram bot with long polling
	ask         Talk to the assistant from the terminal
	vault       List or delete saved sourcing sessions
	export      Export a saved session's vendors to CSV or PDF
	token       Mint a vault owner token
	diagnose    Check the model endpoint
	version     Show version information
*/
package main

import (
	"fmt"
	"os"

	"github.com/iyunix/go-vendornexus/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version, cli.Commit, cli.Date = version, commit, date

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
