// Command greenroute finds minimum-cost routes through a renewable-energy
// network described by a node table and an adjacency matrix.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "greenroute:", err)
		cancel()
		os.Exit(1)
	}
}
