package tournament

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-sqlite3"
	"github.com/mauv0809/swiss-ledger/internal/metrics"
)

// Rejection reasons reported to metrics.
const (
	reasonSelfPairing   = "self_pairing"
	reasonUnknownPlayer = "unknown_player"
	reasonDuplicate     = "duplicate"
)

// standingsQuery derives wins and matches from the matches table. Players
// without matches still appear through the LEFT JOIN.
const standingsQuery = `
	SELECT
		p.id,
		p.name,
		COALESCE(SUM(CASE WHEN m.winner = p.id THEN 1 ELSE 0 END), 0) AS wins,
		COUNT(m.id) AS matches
	FROM players p
	LEFT JOIN matches m ON m.winner = p.id OR m.loser = p.id
	%s
	GROUP BY p.id, p.name
	ORDER BY wins DESC, p.id ASC
	%s
`

// New creates a new Ledger backed by db.
func New(db *sql.DB, metrics metrics.Metrics) Ledger {
	return &store{
		db:      db,
		metrics: metrics,
	}
}

func (s *store) RegisterPlayer(ctx context.Context, name string) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := Player{Name: name, CreatedAt: time.Unix(time.Now().Unix(), 0)}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO players (name, created_at) VALUES (?, ?) RETURNING id",
		name, player.CreatedAt.Unix(),
	).Scan(&player.ID)
	if err != nil {
		log.Error("Failed to register player", "error", err, "name", name)
		return Player{}, fmt.Errorf("%w: failed to register player %q: %w", ErrStoreWrite, name, err)
	}

	s.metrics.IncPlayersRegistered()
	log.Info("Registered player", "playerID", player.ID, "name", name)
	return player, nil
}

func (s *store) CountPlayers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (s *store) DeletePlayers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrStoreWrite, err)
	}
	defer tx.Rollback()

	// Matches reference players, so they go first.
	matches, err := tx.ExecContext(ctx, "DELETE FROM matches")
	if err != nil {
		return fmt.Errorf("%w: failed to clear matches table: %w", ErrStoreWrite, err)
	}
	players, err := tx.ExecContext(ctx, "DELETE FROM players")
	if err != nil {
		return fmt.Errorf("%w: failed to clear players table: %w", ErrStoreWrite, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit player reset: %w", ErrStoreWrite, err)
	}

	log.Info("Deleted all players", "players", rowsAffected(players), "matches", rowsAffected(matches))
	return nil
}

func (s *store) DeleteMatches(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM matches")
	if err != nil {
		return fmt.Errorf("%w: failed to clear matches table: %w", ErrStoreWrite, err)
	}
	log.Info("Deleted all matches", "matches", rowsAffected(result))
	return nil
}

// ReportMatch validates the pair and inserts the match in one transaction.
// A rematch in either orientation is rejected with ErrDuplicateMatch.
func (s *store) ReportMatch(ctx context.Context, winnerID, loserID int64) (Match, error) {
	if winnerID == loserID {
		return s.reject(reasonSelfPairing, fmt.Errorf("%w: player %d", ErrSelfPairing, winnerID))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Match{}, fmt.Errorf("%w: failed to begin transaction: %w", ErrStoreWrite, err)
	}
	defer tx.Rollback()

	var known int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM players WHERE id IN (?, ?)", winnerID, loserID).Scan(&known)
	if err != nil {
		return Match{}, fmt.Errorf("%w: failed to look up players %d and %d: %w", ErrStoreWrite, winnerID, loserID, err)
	}
	if known != 2 {
		return s.reject(reasonUnknownPlayer, fmt.Errorf("%w: winner %d or loser %d is not registered", ErrUnknownPlayer, winnerID, loserID))
	}

	var played bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM matches
			WHERE (winner = ? AND loser = ?) OR (winner = ? AND loser = ?)
		)`, winnerID, loserID, loserID, winnerID,
	).Scan(&played)
	if err != nil {
		return Match{}, fmt.Errorf("%w: failed to check match history: %w", ErrStoreWrite, err)
	}
	if played {
		return s.reject(reasonDuplicate, fmt.Errorf("%w: %d and %d", ErrDuplicateMatch, winnerID, loserID))
	}

	match := Match{Winner: winnerID, Loser: loserID, ReportedAt: time.Unix(time.Now().Unix(), 0)}
	err = tx.QueryRowContext(ctx,
		"INSERT INTO matches (winner, loser, reported_at) VALUES (?, ?, ?) RETURNING id",
		winnerID, loserID, match.ReportedAt.Unix(),
	).Scan(&match.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return s.reject(reasonDuplicate, fmt.Errorf("%w: %d and %d", ErrDuplicateMatch, winnerID, loserID))
		}
		return Match{}, fmt.Errorf("%w: failed to insert match: %w", ErrStoreWrite, err)
	}
	if err := tx.Commit(); err != nil {
		return Match{}, fmt.Errorf("%w: failed to commit match: %w", ErrStoreWrite, err)
	}

	s.metrics.IncMatchesReported()
	log.Info("Recorded match", "matchID", match.ID, "winner", winnerID, "loser", loserID)
	return match, nil
}

func (s *store) reject(reason string, err error) (Match, error) {
	s.metrics.IncMatchRejected(reason)
	log.Warn("Rejected match report", "reason", reason, "error", err)
	return Match{}, err
}

func (s *store) ListMatches(ctx context.Context) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, winner, loser, reported_at FROM matches ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]Match, 0)
	for rows.Next() {
		var m Match
		var reportedAt int64
		if err := rows.Scan(&m.ID, &m.Winner, &m.Loser, &reportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		m.ReportedAt = time.Unix(reportedAt, 0)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) PlayerStandings(ctx context.Context) ([]Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	defer func() {
		s.metrics.ObserveStandingsDuration(time.Since(start).Seconds())
	}()

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(standingsQuery, "", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	standings := make([]Standing, 0)
	for rows.Next() {
		var st Standing
		if err := rows.Scan(&st.ID, &st.Name, &st.Wins, &st.Matches); err != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", err)
		}
		standings = append(standings, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read standings: %w", err)
	}
	return standings, nil
}

// GetStandingByName performs a case-insensitive substring search, e.g. "ali"
// matches "Alice Smith". '%' and '_' in name are matched literally.
func (s *store) GetStandingByName(ctx context.Context, name string) (*Standing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pattern := "%" + likeEscaper.Replace(name) + "%"
	query := fmt.Sprintf(standingsQuery, `WHERE p.name LIKE ? ESCAPE '\'`, "LIMIT 1")

	var st Standing
	err := s.db.QueryRowContext(ctx, query, pattern).Scan(&st.ID, &st.Name, &st.Wins, &st.Matches)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Info("No player found matching pattern", "pattern", pattern)
			return nil, fmt.Errorf("%w: no player matching '%s'", ErrPlayerNotFound, name)
		}
		return nil, fmt.Errorf("failed to query standing by name: %w", err)
	}

	log.Debug("Found player standing by name", "player", st.Name)
	return &st, nil
}

func (s *store) SwissPairings(ctx context.Context) ([]Pairing, error) {
	standings, err := s.PlayerStandings(ctx)
	if err != nil {
		return nil, err
	}
	pairings, err := Pair(standings)
	if err != nil {
		return nil, err
	}

	s.metrics.IncPairingsGenerated()
	log.Info("Generated Swiss pairings", "players", len(standings), "pairs", len(pairings))
	return pairings, nil
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// isUniqueViolation reports whether err is SQLite rejecting a duplicate pair.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func rowsAffected(result sql.Result) int64 {
	n, err := result.RowsAffected()
	if err != nil {
		return -1
	}
	return n
}
