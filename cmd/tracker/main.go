// Command tracker is the command line client for the food donation tracker API.
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"food-donation-tracker/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))
	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Run(ctx, os.Stdout, os.Stderr, os.Args, env)
	stop()
	os.Exit(code)
}
