// Package tracker applies score changes to stored player progress.
//
// It looks games up in the registry, builds and caches their threshold
// tables, resolves scores through the progression package and persists the
// resolved tier with the score rebased into that tier.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/vovakirdan/prestige/internal/progression"
	"github.com/vovakirdan/prestige/internal/registry"
	"github.com/vovakirdan/prestige/internal/storage"
)

const (
	// DefaultTableCacheSize is the number of game tables kept in memory.
	DefaultTableCacheSize = 64
	// DefaultTableTTL is how long a built table stays cached.
	DefaultTableTTL = 30 * time.Minute
)

// ErrNegativeDelta is returned by AddScore for deltas below zero.
var ErrNegativeDelta = errors.New("tracker: score delta must not be negative")

// Store is the persistence the tracker needs. *storage.Store implements it.
type Store interface {
	Player(ctx context.Context, gameID, player string) (storage.PlayerRecord, error)
	Players(ctx context.Context, gameID string) ([]storage.PlayerRecord, error)
	UpdateProgress(
		ctx context.Context,
		gameID, player string,
		fn func(current storage.PlayerRecord, found bool) (storage.ProgressChange, error),
	) (storage.PlayerRecord, error)
	History(ctx context.Context, gameID, player string, limit int) ([]storage.ScoreEvent, error)
}

// Standing is a player's evaluated progress in one game.
type Standing struct {
	Player string
	progression.Status
	UpdatedAt time.Time
}

// Update describes the effect of one AddScore call.
type Update struct {
	GameID string
	Player string
	Delta  int64
	Before progression.Status
	After  progression.Status
	// TierUps is the number of tiers crossed by the change.
	TierUps int
}

// LevelChanged reports whether the player ended on a different level or tier.
func (u Update) LevelChanged() bool {
	return u.Before.Tier != u.After.Tier || u.Before.Level != u.After.Level
}

// Tracker evaluates and records player progress. It is safe for concurrent use.
type Tracker struct {
	games  *registry.Registry
	store  Store
	tables *expirable.LRU[string, *progression.Table]
	log    *log.Logger
}

// New creates a tracker over the given registry and store.
func New(games *registry.Registry, store Store, logger *log.Logger) *Tracker {
	return &Tracker{
		games:  games,
		store:  store,
		tables: expirable.NewLRU[string, *progression.Table](DefaultTableCacheSize, nil, DefaultTableTTL),
		log:    logger,
	}
}

// Games returns the registered games.
func (t *Tracker) Games() []registry.GameInfo {
	return t.games.List()
}

// Table returns the threshold table of gameID, building it on first use.
func (t *Tracker) Table(gameID string) (*progression.Table, error) {
	if table, ok := t.tables.Get(gameID); ok {
		return table, nil
	}

	game, err := t.games.Lookup(gameID)
	if err != nil {
		return nil, err
	}

	table, err := progression.BuildTable(game.Curve)
	if err != nil {
		return nil, fmt.Errorf("tracker: game %q: %w", gameID, err)
	}

	t.tables.Add(gameID, table)
	t.log.Debug("built threshold table", "game", gameID, "tiers", table.TierCount(), "total", table.TotalPossibleScore())
	return table, nil
}

// Status evaluates a player's stored progress. Players without a record
// are reported at tier 1 with score 0.
func (t *Tracker) Status(ctx context.Context, gameID, player string) (Standing, error) {
	table, err := t.Table(gameID)
	if err != nil {
		return Standing{}, err
	}

	rec, err := t.store.Player(ctx, gameID, player)
	if errors.Is(err, storage.ErrPlayerNotFound) {
		rec = storage.PlayerRecord{GameID: gameID, Player: player, Tier: 1}
	} else if err != nil {
		return Standing{}, err
	}

	status, err := t.evaluate(table, rec)
	if err != nil {
		return Standing{}, err
	}
	return Standing{Player: player, Status: status, UpdatedAt: rec.UpdatedAt.Time}, nil
}

// AddScore adds delta points to a player's progress and stores the result.
func (t *Tracker) AddScore(ctx context.Context, gameID, player string, delta int64) (Update, error) {
	if delta < 0 {
		return Update{}, ErrNegativeDelta
	}

	table, err := t.Table(gameID)
	if err != nil {
		return Update{}, err
	}

	upd := Update{GameID: gameID, Player: player, Delta: delta}
	_, err = t.store.UpdateProgress(ctx, gameID, player,
		func(cur storage.PlayerRecord, _ bool) (storage.ProgressChange, error) {
			before, err := t.evaluate(table, cur)
			if err != nil {
				return storage.ProgressChange{}, err
			}

			raw := cur.Score + delta
			if delta > math.MaxInt64-cur.Score {
				raw = math.MaxInt64
			}
			after, err := progression.Evaluate(table, cur.Tier, raw)
			if err != nil {
				return storage.ProgressChange{}, err
			}

			upd.Before, upd.After = before, after
			upd.TierUps = after.Tier - before.Tier
			return storage.ProgressChange{Tier: after.Tier, Score: after.ScoreWithinTier, Delta: delta}, nil
		})
	if err != nil {
		return Update{}, err
	}

	t.logUpdate(upd)
	return upd, nil
}

// SetProgress overwrites a player's stored tier and score. The score is
// resolved first, so a score past the tier ceiling is stored rolled over.
func (t *Tracker) SetProgress(ctx context.Context, gameID, player string, tier int, score int64) (progression.Status, error) {
	table, err := t.Table(gameID)
	if err != nil {
		return progression.Status{}, err
	}

	status, err := progression.Evaluate(table, tier, score)
	if err != nil {
		return progression.Status{}, err
	}

	_, err = t.store.UpdateProgress(ctx, gameID, player,
		func(storage.PlayerRecord, bool) (storage.ProgressChange, error) {
			return storage.ProgressChange{Tier: status.Tier, Score: status.ScoreWithinTier}, nil
		})
	if err != nil {
		return progression.Status{}, err
	}

	t.log.Info("progress set", "game", gameID, "player", player,
		"tier", progression.TierName(status.Tier), "level", status.Level, "score", status.ScoreWithinTier)
	return status, nil
}

// Leaderboard returns the standings of gameID ordered by global score,
// highest first, ties broken by player name. A limit <= 0 returns everyone.
// Records whose tier is missing from the table are logged and skipped;
// any other evaluation failure is returned.
func (t *Tracker) Leaderboard(ctx context.Context, gameID string, limit int) ([]Standing, error) {
	table, err := t.Table(gameID)
	if err != nil {
		return nil, err
	}

	recs, err := t.store.Players(ctx, gameID)
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(recs))
	for _, rec := range recs {
		status, err := t.evaluate(table, rec)
		if errors.Is(err, progression.ErrTierNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		standings = append(standings, Standing{Player: rec.Player, Status: status, UpdatedAt: rec.UpdatedAt.Time})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].GlobalScore != standings[j].GlobalScore {
			return standings[i].GlobalScore > standings[j].GlobalScore
		}
		return standings[i].Player < standings[j].Player
	})

	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}
	return standings, nil
}

// History returns the latest recorded changes of a player, newest first.
func (t *Tracker) History(ctx context.Context, gameID, player string, limit int) ([]storage.ScoreEvent, error) {
	if _, err := t.games.Lookup(gameID); err != nil {
		return nil, err
	}
	return t.store.History(ctx, gameID, player, limit)
}

// evaluate resolves a stored record. A tier the table does not have means
// the record and the game's curve disagree, which is logged as an integrity
// problem.
func (t *Tracker) evaluate(table *progression.Table, rec storage.PlayerRecord) (progression.Status, error) {
	status, err := progression.Evaluate(table, rec.Tier, rec.Score)
	if errors.Is(err, progression.ErrTierNotFound) {
		t.log.Error("stored tier missing from table, data integrity problem",
			"game", rec.GameID, "player", rec.Player, "tier", rec.Tier, "tiers", table.TierCount())
	}
	if err != nil {
		return progression.Status{}, fmt.Errorf("tracker: %s in %s: %w", rec.Player, rec.GameID, err)
	}
	return status, nil
}

func (t *Tracker) logUpdate(u Update) {
	if u.TierUps > 0 {
		t.log.Info("tier up", "game", u.GameID, "player", u.Player,
			"from", progression.TierName(u.Before.Tier), "to", progression.TierName(u.After.Tier))
	} else if u.LevelChanged() {
		t.log.Info("level up", "game", u.GameID, "player", u.Player,
			"tier", progression.TierName(u.After.Tier), "level", u.After.Level)
	}
	if u.After.Degenerate {
		t.log.Warn("empty level interval, progress reported as complete",
			"game", u.GameID, "tier", u.After.Tier, "level", u.After.Level)
	}
	t.log.Debug("score added", "game", u.GameID, "player", u.Player, "delta", u.Delta,
		"global", u.After.GlobalScore, "progress", u.After.ProgressGlobal)
}
