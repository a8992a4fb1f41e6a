package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"dungeonforge.gg/internal/game/world"
)

// SQLiteIndex is a read-model over combat and session activity. It is purely
// observational: the simulation never reads from it, and a saturated indexer
// drops writes rather than stalling the world goroutine.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqCombat reqKind = iota + 1
	reqSession
)

type req struct {
	kind    reqKind
	combat  world.CombatLogEntry
	session world.SessionLogEntry
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kills (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			attacker_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			damage INTEGER NOT NULL,
			target_health INTEGER NOT NULL,
			killed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_kills_attacker ON kills(attacker_id, killed);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			tick INTEGER NOT NULL,
			player_id TEXT NOT NULL,
			name TEXT NOT NULL,
			event TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player_id);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) WriteCombat(entry world.CombatLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqCombat, combat: entry}:
	default:
		// Drop if the indexer falls behind; JSONL logs remain the source of truth.
	}
	return nil
}

func (s *SQLiteIndex) WriteSession(entry world.SessionLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- req{kind: reqSession, session: entry}:
	default:
	}
	return nil
}

func (s *SQLiteIndex) loop() {
	insertKill, _ := s.db.Prepare(`INSERT INTO kills(tick,attacker_id,target_id,damage,target_health,killed) VALUES(?,?,?,?,?,?)`)
	insertSession, _ := s.db.Prepare(`INSERT INTO sessions(tick,player_id,name,event) VALUES(?,?,?,?)`)
	defer func() {
		if insertKill != nil {
			_ = insertKill.Close()
		}
		if insertSession != nil {
			_ = insertSession.Close()
		}
	}()

	for r := range s.ch {
		switch r.kind {
		case reqCombat:
			if insertKill != nil {
				killed := 0
				if r.combat.Killed {
					killed = 1
				}
				_, _ = insertKill.Exec(r.combat.Tick, r.combat.AttackerID, r.combat.TargetID,
					r.combat.Damage, r.combat.TargetHealth, killed)
			}
		case reqSession:
			if insertSession != nil {
				_, _ = insertSession.Exec(r.session.Tick, r.session.PlayerID, r.session.Name, r.session.Event)
			}
		}
	}
}

type LeaderboardRow struct {
	PlayerID    string `json:"player_id"`
	Kills       int    `json:"kills"`
	TotalDamage int    `json:"total_damage"`
}

// TopKillers returns attackers ordered by kill count then total damage.
func (s *SQLiteIndex) TopKillers(ctx context.Context, limit int) ([]LeaderboardRow, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT attacker_id, SUM(killed) AS kills, SUM(damage) AS total_damage
		FROM kills
		GROUP BY attacker_id
		ORDER BY kills DESC, total_damage DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.PlayerID, &r.Kills, &r.TotalDamage); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
