// Package storage provides SQLite-based persistence for player progression.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrPlayerNotFound is returned when a player has no stored progress for a game.
var ErrPlayerNotFound = errors.New("storage: player not found")

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sqlx.DB
}

// PlayerRecord is the stored progression state of one player in one game.
// Score is the score within Tier, already rebased after tier roll-overs.
type PlayerRecord struct {
	GameID    string    `db:"game_id"`
	Player    string    `db:"player"`
	Tier      int       `db:"tier"`
	Score     int64     `db:"score"`
	UpdatedAt Timestamp `db:"updated_at"`
}

// ScoreEvent is one recorded change of a player's progress.
type ScoreEvent struct {
	ID          int64     `db:"id"`
	GameID      string    `db:"game_id"`
	Player      string    `db:"player"`
	Delta       int64     `db:"delta"`
	TierBefore  int       `db:"tier_before"`
	ScoreBefore int64     `db:"score_before"`
	TierAfter   int       `db:"tier_after"`
	ScoreAfter  int64     `db:"score_after"`
	CreatedAt   Timestamp `db:"created_at"`
}

// ProgressChange is the new state decided by an UpdateProgress callback.
// Delta is the number of points that caused the change; it is only logged.
type ProgressChange struct {
	Tier  int
	Score int64
	Delta int64
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string    `db:"game_id"`
	Players     int       `db:"players"`
	Events      int       `db:"events"`
	PointsTotal int64     `db:"points_total"`
	LastPlayed  Timestamp `db:"last_played"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// SQLite has a single writer; one connection also serializes progress updates.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			tier INTEGER NOT NULL CHECK (tier >= 1),
			score INTEGER NOT NULL CHECK (score >= 0),
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (game_id, player)
		);

		CREATE TABLE IF NOT EXISTS score_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL,
			delta INTEGER NOT NULL,
			tier_before INTEGER NOT NULL,
			score_before INTEGER NOT NULL,
			tier_after INTEGER NOT NULL,
			score_after INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_score_events_player ON score_events(game_id, player, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Player returns the stored progress of player in gameID.
// Returns ErrPlayerNotFound if nothing has been recorded yet.
func (s *Store) Player(ctx context.Context, gameID, player string) (PlayerRecord, error) {
	var rec PlayerRecord
	err := s.db.GetContext(ctx, &rec,
		`SELECT game_id, player, tier, score, updated_at
		 FROM players
		 WHERE game_id = ? AND player = ?`,
		gameID, player,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return PlayerRecord{}, ErrPlayerNotFound
	}
	if err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot query player: %w", err)
	}
	return rec, nil
}

// Players returns every stored player of gameID ordered by name.
func (s *Store) Players(ctx context.Context, gameID string) ([]PlayerRecord, error) {
	var recs []PlayerRecord
	err := s.db.SelectContext(ctx, &recs,
		`SELECT game_id, player, tier, score, updated_at
		 FROM players
		 WHERE game_id = ?
		 ORDER BY player`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	return recs, nil
}

// Games returns the IDs of all games with stored progress.
func (s *Store) Games(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, `SELECT DISTINCT game_id FROM players ORDER BY game_id`); err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	return ids, nil
}

// UpdateProgress reads the player's record, passes it to fn and stores the
// change fn returns, all inside one transaction. A player without a record is
// passed as tier 1 with score 0 and found=false. If fn returns an error nothing
// is written and the error is returned unchanged.
func (s *Store) UpdateProgress(
	ctx context.Context,
	gameID, player string,
	fn func(current PlayerRecord, found bool) (ProgressChange, error),
) (PlayerRecord, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	current := PlayerRecord{GameID: gameID, Player: player, Tier: 1}
	found := true
	err = tx.GetContext(ctx, &current,
		`SELECT game_id, player, tier, score, updated_at
		 FROM players
		 WHERE game_id = ? AND player = ?`,
		gameID, player,
	)
	if errors.Is(err, sql.ErrNoRows) {
		found = false
	} else if err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot query player: %w", err)
	}

	change, err := fn(current, found)
	if err != nil {
		return PlayerRecord{}, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO players (game_id, player, tier, score)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (game_id, player) DO UPDATE SET
			tier = excluded.tier,
			score = excluded.score,
			updated_at = CURRENT_TIMESTAMP`,
		gameID, player, change.Tier, change.Score,
	); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot save progress: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO score_events
		 (game_id, player, delta, tier_before, score_before, tier_after, score_after)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID, player, change.Delta, current.Tier, current.Score, change.Tier, change.Score,
	); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot save score event: %w", err)
	}

	var updated PlayerRecord
	if err := tx.GetContext(ctx, &updated,
		`SELECT game_id, player, tier, score, updated_at
		 FROM players
		 WHERE game_id = ? AND player = ?`,
		gameID, player,
	); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot reload player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return updated, nil
}

// History returns the most recent score events of a player, newest first.
func (s *Store) History(ctx context.Context, gameID, player string, limit int) ([]ScoreEvent, error) {
	if limit <= 0 {
		limit = 20
	}

	var events []ScoreEvent
	err := s.db.SelectContext(ctx, &events,
		`SELECT id, game_id, player, delta, tier_before, score_before, tier_after, score_after, created_at
		 FROM score_events
		 WHERE game_id = ? AND player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	return events, nil
}

// ResetPlayer deletes a player's progress and history for gameID.
// Returns ErrPlayerNotFound if the player had no record.
func (s *Store) ResetPlayer(ctx context.Context, gameID, player string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, "DELETE FROM players WHERE game_id = ? AND player = ?", gameID, player)
	if err != nil {
		return fmt.Errorf("storage: cannot delete player: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrPlayerNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM score_events WHERE game_id = ? AND player = ?", gameID, player); err != nil {
		return fmt.Errorf("storage: cannot delete history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit reset: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(ctx context.Context, gameID string) (GameStats, error) {
	stats := GameStats{GameID: gameID}

	if err := s.db.GetContext(ctx, &stats.Players,
		`SELECT COUNT(*) FROM players WHERE game_id = ?`, gameID,
	); err != nil {
		return GameStats{}, fmt.Errorf("storage: cannot count players: %w", err)
	}

	row := s.db.QueryRowxContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(delta), 0), MAX(created_at)
		 FROM score_events WHERE game_id = ?`,
		gameID,
	)
	if err := row.Scan(&stats.Events, &stats.PointsTotal, &stats.LastPlayed); err != nil {
		return GameStats{}, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	return stats, nil
}

// Timestamp scans SQLite DATETIME values, which the driver may return either
// as time.Time or as text.
type Timestamp struct {
	time.Time
}

const sqliteTimeLayout = "2006-01-02 15:04:05"

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("storage: cannot scan %T into timestamp", src)
	}
	return nil
}

func (t *Timestamp) parse(s string) error {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("storage: cannot parse timestamp %q", s)
}
