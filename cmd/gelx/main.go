// gelx generates typed Go code from a Gel schema and EdgeQL query files.
//
//	go run ./cmd/gelx generate
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/syssam/gelx/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
