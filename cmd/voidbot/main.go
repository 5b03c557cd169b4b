package main

import (
	"log"

	"voidbot/internal/bot"
	"voidbot/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Create and start bot
	voidBot, err := bot.New(cfg)
	if err != nil {
		log.Fatal("Failed to create bot:", err)
	}

	if err := voidBot.Start(); err != nil {
		log.Fatal("Failed to start bot:", err)
	}
}
