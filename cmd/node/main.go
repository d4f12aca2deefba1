package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/locshare/internal/node"
	"github.com/dmitrijs2005/locshare/internal/node/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := node.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
