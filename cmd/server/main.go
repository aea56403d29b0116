package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/authkeeper/internal/server"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
