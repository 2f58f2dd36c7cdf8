package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"AstroInsight/internal/handler/cli"
	"AstroInsight/pkg/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, server.Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
