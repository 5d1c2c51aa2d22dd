package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/shaketracker/internal/server"
	"github.com/dmitrijs2005/shaketracker/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("server init: %v", err)
	}

	app.Run(context.Background())
}
