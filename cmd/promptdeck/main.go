package main

import (
	"log"

	"github.com/promptdeck/promptdeck/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ promptdeck failed to start: %v", err)
	}
}
