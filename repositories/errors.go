package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrDanglingReference is returned when a write hits a foreign key
	// violation: a referenced row vanished between validation and write.
	ErrDanglingReference = errors.New("referenced row does not exist")
	// ErrTeamsNotDistinct is returned when the distinct-teams check constraint fires.
	ErrTeamsNotDistinct = errors.New("home and away team must differ")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintForeignKey
	constraintUnique
	constraintCheck
)

// classifyConstraint recognizes constraint violations from every supported
// driver: lib/pq, pgx and modernc sqlite.
func classifyConstraint(err error) constraintKind {
	if err == nil {
		return constraintNone
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pgCodeKind(string(pqErr.Code))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgCodeKind(pgErr.Code)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return constraintUnique
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return constraintCheck
		}
		// без extended result codes приходит голый SQLITE_CONSTRAINT
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return sqliteMessageKind(liteErr.Error())
		}
	}
	return constraintNone
}

func sqliteMessageKind(msg string) constraintKind {
	switch {
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return constraintForeignKey
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return constraintUnique
	case strings.Contains(msg, "CHECK constraint failed"):
		return constraintCheck
	}
	return constraintNone
}

func pgCodeKind(code string) constraintKind {
	switch code {
	case pgForeignKeyViolation:
		return constraintForeignKey
	case pgUniqueViolation:
		return constraintUnique
	case pgCheckViolation:
		return constraintCheck
	}
	return constraintNone
}
