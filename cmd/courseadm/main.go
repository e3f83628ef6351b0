package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"course-admin/internal/adminapi"
	"course-admin/internal/config"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	gw := adminapi.New(cfg.APIBaseURL, cfg.APIToken)

	app := newApp(gw, cfg)
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
