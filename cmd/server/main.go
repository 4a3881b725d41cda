package main

import (
	"context"
	"log"
	"os"

	"github.com/rosterhq/roster/internal/buildinfo"
	"github.com/rosterhq/roster/internal/server"
	"github.com/rosterhq/roster/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
