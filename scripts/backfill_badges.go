// Backfill badge awards for users who completed lessons before the badge
// catalog was seeded.
//
// Awards are idempotent, so re-running is safe.
//
// Usage: go run scripts/backfill_badges.go
package main

import (
	"log"

	"quantum_edu_backend/internal/config"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/service"
	"quantum_edu_backend/pkg/database"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	badgeService := service.NewBadgeService(repository.NewBadgeRepository(db), progressRepo)

	users, err := userRepo.FindAll()
	if err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}

	awarded := 0
	for _, user := range users {
		if err := badgeService.AwardOnCompletion(user.ID); err != nil {
			log.Printf("user %d: %v", user.ID, err)
			continue
		}
		awarded++
	}

	log.Printf("Processed %d users", awarded)
}
