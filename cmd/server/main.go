package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/rz2606/lab-website-sub002/internal/server"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
)

func main() {
	// A missing .env is normal on a fresh deployment; the install wizard
	// writes one.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
