// @title Cosmic Quiz API
// @version 1.0
// @description Backend for the Cosmic Quiz trivia platform: community-authored questions, moderation, quiz runs, points, badges and a live leaderboard.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ModeratorKey
// @in header
// @name X-Moderator-Key

package main

import (
	"cosmic_quiz_backend/internal/app"
	"cosmic_quiz_backend/internal/config"
	"cosmic_quiz_backend/pkg/configwatcher"
	"cosmic_quiz_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup, even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	// Hot-reload the moderation key on config edits; everything else is
	// captured at construction and needs a restart.
	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(updated interface{}) {
		if newCfg, ok := updated.(*config.Config); ok {
			cfg.Moderation = newCfg.Moderation
			logger.Log.Info("configuration reloaded")
		}
	})

	application.Run()
}
