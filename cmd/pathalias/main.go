// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

// Command pathalias inspects project roots, ignore rules and import aliases.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], newApp(os.Stdout, os.Stderr))
	stop()

	os.Exit(code)
}

// run executes the command tree and reports a failure on stderr.
func run(ctx context.Context, args []string, a *app) int {
	cmd := a.rootCommand()
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.reportError(err)
		return 1
	}

	return 0
}
