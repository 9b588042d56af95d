package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/livefire2015/ez-receivables/src/config"
	"github.com/livefire2015/ez-receivables/src/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		cfgErr = err
		if err := logger.Setup(logger.DefaultConfig()); err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
	} else if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	Execute()
}
