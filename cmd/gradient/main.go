// Command gradient times the gradient kernel over every array layout.
//
//	gradient [flags] [array size]
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hupe1980/agnostic"
	"github.com/hupe1980/agnostic/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Main(ctx, agnostic.ProgramGradient, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
