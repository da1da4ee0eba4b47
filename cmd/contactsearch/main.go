package main

import (
	"log"
	"os"

	"ai-contact-search-be/internal/bootstrap"
	"ai-contact-search-be/internal/cli"
	"ai-contact-search-be/internal/config"
	"ai-contact-search-be/internal/pkg/logger"
	"ai-contact-search-be/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// Logs go to the file only so stdout stays readable.
	container := bootstrap.NewContainerWithLogger(gormDB, cfg, logger.NewIsolatedLogger(cfg.App.LogFilePath))

	cli.SetServices(container.SearchService, container.ReferralService, container.UserRepository, container.LLMProvider)

	err = cli.Execute()
	container.Close()
	if err != nil {
		os.Exit(1)
	}
}
