package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/pitchside/internal/database"
	"github.com/mauv0809/pitchside/internal/match"
	"github.com/mauv0809/pitchside/internal/preset"
	"github.com/mauv0809/pitchside/internal/settings"
	"github.com/mauv0809/pitchside/internal/store"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":           "pitchside.db",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	log.Info("Successfully connected to the database.")

	seedStore := store.New(db)

	// A mid-match futsal snapshot so every surface has something to show.
	state := match.DefaultState(preset.Find(preset.SportFutsal, "standard"))
	state.HomeTeam.Name = "Seeder FC"
	state.AwayTeam.Name = "Demo United"
	state.HomeTeam.Score = 2
	state.AwayTeam.Score = 1
	state.HomeTeam.Fouls = 3
	state.AwayTeam.Fouls = 1
	state.Half = 2
	state.Time = match.GameClock{Minutes: 12, Seconds: 34}
	state.HomeTeam.Stats.ShotsOnTarget = 6
	state.HomeTeam.Stats.ShotsOffTarget = 3
	state.AwayTeam.Stats.ShotsOnTarget = 2
	state.AwayTeam.Stats.ShotsOffTarget = 3
	state.TotalPossessionTime.Home = 420_000
	state.TotalPossessionTime.Away = 280_000

	for i, name := range []string{"Ana", "Berta", "Carla", "Dina", "Eva"} {
		number := i + 1
		state.HomeTeam.Players = append(state.HomeTeam.Players, match.Player{
			ID:     uuid.NewString(),
			Name:   name,
			Number: &number,
			Role:   match.RoleStarter,
		})
	}
	// Keep the home score consistent with roster goals.
	state.HomeTeam.Players[0].Goals = 1
	state.HomeTeam.Players[3].Goals = 1
	state.Normalize()

	if err := seedStore.SaveState(state); err != nil {
		log.Fatalf("Failed to seed match state: %s", err)
	}
	if err := seedStore.SaveSettings(settings.Default()); err != nil {
		log.Fatalf("Failed to seed settings: %s", err)
	}

	log.Info("Seeding complete.", "home", state.HomeTeam.Name, "away", state.AwayTeam.Name)
}
