// Command storefront is a terminal client for the storefront API: browse the
// catalog, keep a cart, check out and manage the session.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/infpro/storefront-api/logger"
)

func main() {
	logger.New(logger.Options{
		Service: "storefront-cli",
		Env:     getEnv("APP_ENV", "dev"),
		Level:   getEnv("LOG_LEVEL", "warn"),
		Output:  os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
