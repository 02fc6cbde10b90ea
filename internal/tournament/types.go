package tournament

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mauv0809/swiss-ledger/internal/metrics"
)

// store handles all database operations for the ledger.
type store struct {
	db      *sql.DB
	mu      sync.RWMutex
	metrics metrics.Metrics
}

// Player is a registered tournament entrant.
type Player struct {
	ID        int64     `json:"id" msgpack:"id"`
	Name      string    `json:"name" msgpack:"name"`
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
}

// Standing is a player's derived record. Wins and Matches are always
// computed from the matches table.
type Standing struct {
	ID      int64  `json:"id" msgpack:"id"`
	Name    string `json:"name" msgpack:"name"`
	Wins    int    `json:"wins" msgpack:"wins"`
	Matches int    `json:"matches" msgpack:"matches"`
}

// Match is an immutable record of one game between two players.
type Match struct {
	ID         int64     `json:"id" msgpack:"id"`
	Winner     int64     `json:"winner" msgpack:"winner"`
	Loser      int64     `json:"loser" msgpack:"loser"`
	ReportedAt time.Time `json:"reported_at" msgpack:"reported_at"`
}

// Pairing is one board of the next round.
type Pairing struct {
	ID1   int64  `json:"id1" msgpack:"id1"`
	Name1 string `json:"name1" msgpack:"name1"`
	ID2   int64  `json:"id2" msgpack:"id2"`
	Name2 string `json:"name2" msgpack:"name2"`
}
