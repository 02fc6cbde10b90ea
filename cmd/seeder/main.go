package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/swiss-ledger/internal/database"
	"github.com/mauv0809/swiss-ledger/internal/metrics"
	"github.com/mauv0809/swiss-ledger/internal/tournament"
	"github.com/spf13/cobra"
)

var (
	numPlayers int
	numRounds  int
	reset      bool
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed the ledger with players and simulated Swiss rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&numPlayers, "players", 8, "Number of players to register")
	rootCmd.Flags().IntVar(&numRounds, "rounds", 3, "Number of rounds to play")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Delete existing players and matches first")
}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName = os.Getenv("DB_NAME")
	primaryURL = os.Getenv("TURSO_PRIMARY_URL")
	authToken = os.Getenv("TURSO_AUTH_TOKEN")
	if dbName == "" && primaryURL == "" {
		log.Fatal("Error: either DB_NAME or TURSO_PRIMARY_URL must be set.")
	}
	return dbName, primaryURL, authToken
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...")
	if numPlayers%2 != 0 {
		return fmt.Errorf("--players must be even, got %d", numPlayers)
	}

	dbName, primaryURL, authToken := loadConfig()
	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		return err
	}
	defer teardown()

	ledger := tournament.New(db, metrics.NewService())
	if reset {
		if err := ledger.DeletePlayers(ctx); err != nil {
			return err
		}
	}

	startTime := time.Now()
	if err := seed(ctx, ledger, numPlayers, numRounds, rand.New(rand.NewSource(time.Now().UnixNano()))); err != nil {
		return err
	}
	log.Info("Finished seeding", "players", numPlayers, "rounds", numRounds, "duration", time.Since(startTime))
	return nil
}

// seed registers players and plays rounds with random winners. A pairing
// that would repeat an earlier match is skipped.
func seed(ctx context.Context, ledger tournament.Ledger, players, rounds int, rng *rand.Rand) error {
	for i := 1; i <= players; i++ {
		if _, err := ledger.RegisterPlayer(ctx, fmt.Sprintf("Seeded Player %d", i)); err != nil {
			return fmt.Errorf("failed to register player %d: %w", i, err)
		}
	}

	for round := 1; round <= rounds; round++ {
		pairings, err := ledger.SwissPairings(ctx)
		if err != nil {
			return fmt.Errorf("failed to pair round %d: %w", round, err)
		}
		played := 0
		for _, p := range pairings {
			winner, loser := p.ID1, p.ID2
			if rng.Intn(2) == 1 {
				winner, loser = loser, winner
			}
			_, err := ledger.ReportMatch(ctx, winner, loser)
			if errors.Is(err, tournament.ErrDuplicateMatch) {
				log.Warn("Skipping rematch", "round", round, "player1", p.Name1, "player2", p.Name2)
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to report round %d match: %w", round, err)
			}
			played++
		}
		log.Info("Played round", "round", round, "matches", played, "skipped", len(pairings)-played)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Seeder failed", "error", err)
	}
}
