// Package database is the optional write-only match archive. When no
// DATABASE_URL is configured, DB stays nil and results are simply not
// recorded; nothing is ever read back during play.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// DB is the shared pool, nil when the archive is disabled.
var DB *pgxpool.Pool

const schema = `
CREATE TABLE IF NOT EXISTS match_results (
	id          BIGSERIAL PRIMARY KEY,
	room_code   TEXT NOT NULL,
	player_id   UUID NOT NULL,
	player_name TEXT NOT NULL,
	level       INT NOT NULL,
	gold        INT NOT NULL,
	won         BOOLEAN NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Connect opens the pool and ensures the archive table exists. An empty url
// leaves the archive disabled.
func Connect(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return fmt.Errorf("database migrate: %w", err)
	}
	DB = pool
	return nil
}

// Close releases the pool.
func Close() {
	if DB != nil {
		DB.Close()
		DB = nil
	}
}

// PlayerResult is one row of the final standings.
type PlayerResult struct {
	PlayerID uuid.UUID
	Name     string
	Level    int
	Gold     int
	Won      bool
}

// StoreMatchResult archives the final standings of a finished game. Failures
// are logged and dropped; the game has already ended either way.
func StoreMatchResult(roomCode string, results []PlayerResult) {
	if DB == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, res := range results {
		_, err := DB.Exec(ctx,
			`INSERT INTO match_results (room_code, player_id, player_name, level, gold, won)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			roomCode, res.PlayerID, res.Name, res.Level, res.Gold, res.Won)
		if err != nil {
			logrus.WithError(err).WithField("room", roomCode).Warn("archive: insert match result")
			return
		}
	}
}
