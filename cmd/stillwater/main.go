package main

import (
	"context"
	"log"

	"github.com/stillwater-app/stillwater/internal/cli"
	"github.com/stillwater-app/stillwater/internal/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())

}
