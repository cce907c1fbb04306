package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tahfidz_backend/internals/commands"
)

func main() {
	// graceful shutdown: SIGINT/SIGTERM membatalkan context serve
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := commands.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		stop()
		os.Exit(1)
	}
}
