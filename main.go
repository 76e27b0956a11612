package main

import (
	"context"
	"log"

	"github.com/locvowork/empdept/internal/bootstrap"
	"github.com/locvowork/empdept/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		log.Fatal(err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
		log.Fatal(err)
	}
}
