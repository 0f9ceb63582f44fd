package main

import (
	"context"
	"log"

	"github.com/betmaster21/blackjack-backend/internal/server"
)

func main() {

	ctx := context.Background()
	app, err := server.NewApp(ctx)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run()

}
