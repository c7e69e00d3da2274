// Package dbtest открывает временную SQLite-базу со схемой лиги для тестов.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/DucQuyen199/quanlybongda/db"
	"github.com/jmoiron/sqlx"
)

const (
	TournamentID = "GD001"
	HomeTeamID   = "TEAM001"
	AwayTeamID   = "TEAM002"
	ThirdTeamID  = "TEAM003"
)

// Open returns a fresh database with the schema applied and foreign keys on.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "league.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	conn, err := db.Connect(db.DriverSQLite, dsn, 5*time.Second)
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	if err := db.ApplySchema(context.Background(), conn); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return conn
}

// Seed inserts tournament GD001 and teams TEAM001..TEAM003. TEAM001 has a logo key.
func Seed(t testing.TB, conn *sqlx.DB) {
	t.Helper()
	ctx := context.Background()

	starts := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	_, err := conn.NamedExecContext(ctx, `
		INSERT INTO tournaments (id, name, starts_at, ends_at, location)
		VALUES (:id, :name, :starts_at, :ends_at, :location)`,
		map[string]interface{}{
			"id":        TournamentID,
			"name":      "Giải Vô Địch 2024",
			"starts_at": starts,
			"ends_at":   starts.AddDate(0, 3, 0),
			"location":  "Hà Nội",
		})
	if err != nil {
		t.Fatalf("seed tournament: %v", err)
	}

	teams := []map[string]interface{}{
		{"id": HomeTeamID, "name": "Hà Nội FC", "logo_key": "teams/TEAM001.png"},
		{"id": AwayTeamID, "name": "Sài Gòn FC", "logo_key": nil},
		{"id": ThirdTeamID, "name": "Đà Nẵng FC", "logo_key": nil},
	}
	for _, team := range teams {
		_, err := conn.NamedExecContext(ctx, `
			INSERT INTO teams (id, name, logo_key) VALUES (:id, :name, :logo_key)`, team)
		if err != nil {
			t.Fatalf("seed team %v: %v", team["id"], err)
		}
	}
}

// Count returns the number of rows in table. Table names are trusted test input.
func Count(t testing.TB, conn *sqlx.DB, table string) int {
	t.Helper()
	var n int
	if err := conn.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
