package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/mydot/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// Interrupts cancel running git commands
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	code := cli.Execute(ctx)
	cancel()
	os.Exit(code)
}
