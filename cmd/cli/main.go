package main

import (
	"context"
	"os"

	"github.com/rosterhq/roster/internal/buildinfo"
	"github.com/rosterhq/roster/internal/client/cli"
	"github.com/rosterhq/roster/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
