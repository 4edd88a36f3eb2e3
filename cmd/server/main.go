// Command server runs the linkmark HTTP API: bookmark CRUD, tag
// management, the assistant extraction endpoint, and the Telegram and
// WhatsApp webhooks.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/vkuzmenko/linkmark/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
