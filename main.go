package main

import (
	"log"

	"webhook-examples/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
