package main

import (
	"context"

	"github.com/akosarev/notekeeper/internal/client/cli"
	"github.com/akosarev/notekeeper/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Root(ctx)

}
