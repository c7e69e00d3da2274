package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestClassifyConstraintPostgresDrivers(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want constraintKind
	}{
		{"pq foreign key", &pq.Error{Code: "23503"}, constraintForeignKey},
		{"pq unique", &pq.Error{Code: "23505"}, constraintUnique},
		{"pq check", &pq.Error{Code: "23514"}, constraintCheck},
		{"pq other", &pq.Error{Code: "42P01"}, constraintNone},
		{"pgx foreign key", &pgconn.PgError{Code: "23503"}, constraintForeignKey},
		{"pgx unique wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), constraintUnique},
		{"plain error", errors.New("boom"), constraintNone},
		{"nil", nil, constraintNone},
	}
	for _, tc := range cases {
		if got := classifyConstraint(tc.err); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestSQLiteMessageKind(t *testing.T) {
	cases := map[string]constraintKind{
		"FOREIGN KEY constraint failed":                       constraintForeignKey,
		"UNIQUE constraint failed: schedules.id":              constraintUnique,
		"CHECK constraint failed: matches_distinct_teams":     constraintCheck,
		"NOT NULL constraint failed: schedules.tournament_id": constraintNone,
	}
	for msg, want := range cases {
		if got := sqliteMessageKind(msg); got != want {
			t.Fatalf("%q: got %v want %v", msg, got, want)
		}
	}
}

func TestMatchErrorMapping(t *testing.T) {
	r := &sqlMatchRepository{}
	if err := r.handleMatchError(&pq.Error{Code: "23503"}); !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("expected ErrDanglingReference, got %v", err)
	}
	if err := r.handleMatchError(&pq.Error{Code: "23505"}); !errors.Is(err, ErrMatchConflict) {
		t.Fatalf("expected ErrMatchConflict, got %v", err)
	}
	if err := r.handleMatchError(&pgconn.PgError{Code: "23514"}); !errors.Is(err, ErrTeamsNotDistinct) {
		t.Fatalf("expected ErrTeamsNotDistinct, got %v", err)
	}
	if err := r.handleMatchError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
