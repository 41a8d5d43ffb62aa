// Package dbtest opens throwaway in-memory SQLite databases that carry the
// same tables as the Postgres schema, for repository and route tests.
package dbtest

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE teams (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    team_code   TEXT NOT NULL,
    team_name   TEXT NOT NULL,
    level       TEXT NOT NULL,
    total_fee   INTEGER NOT NULL,
    eval_method TEXT NOT NULL DEFAULT '',
    eval_link   TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL DEFAULT 'pending_evaluation',
    slip_path   TEXT,
    created_at  DATETIME NOT NULL,
    CONSTRAINT teams_team_code_key UNIQUE (team_code)
);

CREATE TABLE players (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    team_id       INTEGER NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
    full_name     TEXT NOT NULL,
    std_staff_id  TEXT NOT NULL,
    type          TEXT NOT NULL,
    photo_path    TEXT NOT NULL,
    is_player_one BOOLEAN NOT NULL
);

CREATE TABLE app_config (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

var driverSeq atomic.Int64

// Open returns a fresh database. generate_team_code is provided as a Go
// function with per-level counters local to this database.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	var mu sync.Mutex
	seq := make(map[string]int)
	generateTeamCode := func(level string) string {
		mu.Lock()
		defer mu.Unlock()
		key := strings.ToUpper(level)
		seq[key]++
		return fmt.Sprintf("SUT25-%s%03d", key, seq[key])
	}

	driverName := fmt.Sprintf("sqlite3_dbtest_%d", driverSeq.Add(1))
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("generate_team_code", generateTeamCode, false)
		},
	})

	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		t.Fatalf("dbtest: open: %v", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("dbtest: apply schema: %v", err)
	}
	return db
}
