// Package storage provides SQLite-based persistence for session results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/minigame-engine/internal/session"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sqlx.DB
}

// Result is the stored summary of one finished session.
type Result struct {
	ID          int64   `db:"id"`
	SessionID   string  `db:"session_id"`
	GameID      string  `db:"game_id"`
	Stage       string  `db:"stage"`
	Score       int     `db:"score"`
	MaxCombo    int     `db:"max_combo"`
	PerfectHits int     `db:"perfect_hits"`
	Hits        int     `db:"hits"`
	TotalShots  int     `db:"total_shots"`
	Accuracy    float64 `db:"accuracy"`
	Tier        string  `db:"tier"`
	GameTime    float64 `db:"game_time"`
	Continues   int     `db:"continues"`
	PlayedUnix  int64   `db:"played_at"`
}

// PlayedAt returns when the result was recorded.
func (r Result) PlayedAt() time.Time {
	return time.Unix(r.PlayedUnix, 0)
}

// ResultFromSnapshot builds a result for gameID played on stage. The play
// time is set when the result is saved.
func ResultFromSnapshot(gameID, stage string, snap session.Snapshot) Result {
	return Result{
		SessionID:   snap.SessionID,
		GameID:      gameID,
		Stage:       stage,
		Score:       snap.Score.Score,
		MaxCombo:    snap.Score.MaxCombo,
		PerfectHits: snap.Score.PerfectHits,
		Hits:        snap.Score.Hits,
		TotalShots:  snap.Score.TotalShots,
		Accuracy:    snap.Accuracy,
		Tier:        snap.TierName,
		GameTime:    snap.GameTime,
		Continues:   snap.Continues,
	}
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			stage TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			max_combo INTEGER NOT NULL DEFAULT 0,
			perfect_hits INTEGER NOT NULL DEFAULT 0,
			hits INTEGER NOT NULL DEFAULT 0,
			total_shots INTEGER NOT NULL DEFAULT 0,
			accuracy REAL NOT NULL DEFAULT 0,
			tier TEXT NOT NULL DEFAULT '',
			game_time REAL NOT NULL DEFAULT 0,
			continues INTEGER NOT NULL DEFAULT 0,
			played_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(game_id, score DESC);
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

// SaveResult records a finished session. Saving the same session again, e.g.
// after a continue, replaces the earlier row.
func (s *Store) SaveResult(r Result) error {
	if r.SessionID == "" {
		return errors.New("storage: result has no session id")
	}
	if r.PlayedUnix == 0 {
		r.PlayedUnix = time.Now().Unix()
	}

	_, err := s.db.NamedExec(
		`INSERT INTO results
		 (session_id, game_id, stage, score, max_combo, perfect_hits, hits, total_shots,
		  accuracy, tier, game_time, continues, played_at)
		 VALUES
		 (:session_id, :game_id, :stage, :score, :max_combo, :perfect_hits, :hits, :total_shots,
		  :accuracy, :tier, :game_time, :continues, :played_at)
		 ON CONFLICT(session_id) DO UPDATE SET
		  score = excluded.score,
		  max_combo = excluded.max_combo,
		  perfect_hits = excluded.perfect_hits,
		  hits = excluded.hits,
		  total_shots = excluded.total_shots,
		  accuracy = excluded.accuracy,
		  tier = excluded.tier,
		  game_time = excluded.game_time,
		  continues = excluded.continues,
		  played_at = excluded.played_at`,
		r,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save result: %w", err)
	}
	return nil
}

// SortOrder selects how result listings are ranked.
type SortOrder int

const (
	SortScore SortOrder = iota
	SortCombo
	SortAccuracy
)

var sortClauses = map[SortOrder]string{
	SortScore:    "score DESC",
	SortCombo:    "max_combo DESC, score DESC",
	SortAccuracy: "accuracy DESC, score DESC",
}

func (o SortOrder) String() string {
	switch o {
	case SortCombo:
		return "combo"
	case SortAccuracy:
		return "accuracy"
	default:
		return "score"
	}
}

// Next cycles score -> combo -> accuracy -> score.
func (o SortOrder) Next() SortOrder {
	return (o + 1) % SortOrder(len(sortClauses))
}

// ResultQuery narrows a result listing. An empty Stage matches every stage.
type ResultQuery struct {
	Stage string
	Sort  SortOrder
	Limit int
}

// TopResults retrieves the top N results for the given game.
// Results are ordered by score descending, earlier results first on ties.
func (s *Store) TopResults(gameID string, limit int) ([]Result, error) {
	return s.QueryResults(gameID, ResultQuery{Limit: limit})
}

// QueryResults lists results for gameID filtered and ranked by q. Ties fall
// back to the earlier result.
func (s *Store) QueryResults(gameID string, q ResultQuery) ([]Result, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	order, ok := sortClauses[q.Sort]
	if !ok {
		return nil, fmt.Errorf("storage: unknown sort order %d", q.Sort)
	}

	var results []Result
	err := s.db.Select(&results,
		`SELECT * FROM results
		 WHERE game_id = ? AND (? = '' OR stage = ?)
		 ORDER BY `+order+`, played_at ASC, id ASC
		 LIMIT ?`,
		gameID, q.Stage, q.Stage, q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return results, nil
}

// PlayedStages returns the distinct stages gameID has results on, sorted.
func (s *Store) PlayedStages(gameID string) ([]string, error) {
	var stages []string
	err := s.db.Select(&stages,
		`SELECT DISTINCT stage FROM results
		 WHERE game_id = ? AND stage != ''
		 ORDER BY stage`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stages: %w", err)
	}
	return stages, nil
}

// ResultBySession retrieves the result of one session. It returns nil when
// the session has no stored result.
func (s *Store) ResultBySession(sessionID string) (*Result, error) {
	var r Result
	err := s.db.Get(&r, "SELECT * FROM results WHERE session_id = ?", sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	return &r, nil
}

// BestScore returns the highest score for the given game.
// Returns 0 if no results exist.
func (s *Store) BestScore(gameID string) (int, error) {
	var best int
	err := s.db.Get(&best, "SELECT COALESCE(MAX(score), 0) FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return best, nil
}

// ClearResults deletes all results for the given game.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID      string  `db:"game_id"`
	Sessions    int     `db:"sessions"`
	BestScore   int     `db:"best_score"`
	AvgScore    float64 `db:"avg_score"`
	TotalScore  int64   `db:"total_score"`
	BestCombo   int     `db:"best_combo"`
	AvgAccuracy float64 `db:"avg_accuracy"`
	LastUnix    int64   `db:"last_played"`
}

// LastPlayed returns when the game was last played, zero if never.
func (g GameStats) LastPlayed() time.Time {
	if g.LastUnix == 0 {
		return time.Time{}
	}
	return time.Unix(g.LastUnix, 0)
}

const statsColumns = `
	COUNT(*) AS sessions,
	COALESCE(MAX(score), 0) AS best_score,
	COALESCE(AVG(score), 0) AS avg_score,
	COALESCE(SUM(score), 0) AS total_score,
	COALESCE(MAX(max_combo), 0) AS best_combo,
	COALESCE(AVG(accuracy), 0) AS avg_accuracy,
	COALESCE(MAX(played_at), 0) AS last_played`

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(gameID string) (*GameStats, error) {
	return s.StageStats(gameID, "")
}

// StageStats aggregates the results of gameID on one stage, or on every
// stage when stage is empty.
func (s *Store) StageStats(gameID, stage string) (*GameStats, error) {
	stats := GameStats{}
	err := s.db.Get(&stats,
		`SELECT ? AS game_id,`+statsColumns+`
		 FROM results WHERE game_id = ? AND (? = '' OR stage = ?)`,
		gameID, gameID, stage, stage,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	return &stats, nil
}

// AllStats retrieves statistics for every game that has results.
func (s *Store) AllStats() (map[string]*GameStats, error) {
	var rows []GameStats
	err := s.db.Select(&rows,
		`SELECT game_id,`+statsColumns+`
		 FROM results
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	stats := make(map[string]*GameStats, len(rows))
	for i := range rows {
		stats[rows[i].GameID] = &rows[i]
	}
	return stats, nil
}
