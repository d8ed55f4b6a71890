// Command lendinglibrary runs the lending library against a seeded sample catalog.
//
// Usage:
//
//	lendinglibrary demo [--start 2025-03-10]
//	lendinglibrary sweep --checkout-date 2025-03-01 --today 2025-03-20
//	lendinglibrary history --item 123-1234567890
//
// The journal engine, the loan policy and logging come from the YAML file given with --config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
