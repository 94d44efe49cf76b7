package main

import (
	"context"

	"github.com/Samayank/Renal-Tumor-Detection/internal/client/cli"
	"github.com/Samayank/Renal-Tumor-Detection/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	app := cli.NewApp(cfg)
	app.Run(ctx)
}
