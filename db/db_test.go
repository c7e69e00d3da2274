package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/DucQuyen199/quanlybongda/db"
	"github.com/DucQuyen199/quanlybongda/db/dbtest"
)

func TestSplitStatements(t *testing.T) {
	got := db.SplitStatements("CREATE TABLE a (id INT);\n\n ;CREATE INDEX b ON a (id);  ")
	if len(got) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(got), got)
	}
	if got[1] != "CREATE INDEX b ON a (id)" {
		t.Fatalf("unexpected statement %q", got[1])
	}
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	if _, err := db.Connect("mysql", "root@/league", time.Second); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestApplySchemaIsIdempotent(t *testing.T) {
	conn := dbtest.Open(t)
	if err := db.ApplySchema(context.Background(), conn); err != nil {
		t.Fatalf("second ApplySchema: %v", err)
	}
	for _, table := range []string{"tournaments", "teams", "matches", "schedules"} {
		if n := dbtest.Count(t, conn, table); n != 0 {
			t.Fatalf("%s: expected empty table, got %d rows", table, n)
		}
	}
}

func TestSQLiteEnforcesForeignKeys(t *testing.T) {
	conn := dbtest.Open(t)
	_, err := conn.Exec(`INSERT INTO schedules (id, tournament_id, scheduled_on) VALUES ('L001', 'GD404', '2024-05-01')`)
	if err == nil {
		t.Fatalf("expected foreign key violation")
	}
}

func TestIsPostgres(t *testing.T) {
	if !db.IsPostgres(db.DriverPgx) || !db.IsPostgres(db.DriverPostgres) || db.IsPostgres(db.DriverSQLite) {
		t.Fatalf("IsPostgres misclassifies drivers")
	}
}
