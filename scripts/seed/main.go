package main

import (
	"fmt"
	"log"

	"github.com/hrvlabs/stress-monitor/internal/config"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/seed"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Println("Seed completed!")
	fmt.Println("\nSample user IDs for testing:")

	var users []domain.User
	if err := db.Order("created_at asc").Find(&users).Error; err != nil {
		log.Fatalf("Failed to list users: %v", err)
	}
	for _, user := range users {
		fmt.Printf("  %s  %s (%s)\n", user.ID, user.DisplayName, user.Timezone)
	}
}
