package database

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type execDB struct {
	executed []string
	failOn   string
}

func (d *execDB) Ping(_ context.Context) error { return nil }
func (d *execDB) Close() error                 { return nil }

func (d *execDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	if d.failOn != "" && strings.Contains(query, d.failOn) {
		return 0, errors.New("exec failed")
	}
	d.executed = append(d.executed, query)
	return 0, nil
}

func (d *execDB) Query(_ context.Context, _ string, _ ...any) (Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *execDB) QueryRow(_ context.Context, _ string, _ ...any) Row { return nil }

func (d *execDB) Begin(_ context.Context) (Tx, error) {
	return nil, errors.New("not implemented")
}

func TestEnsureSchemaAppliesAllStatements(t *testing.T) {
	db := &execDB{}
	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	if got, want := len(db.executed), len(schemaStatements); got != want {
		t.Fatalf("executed %d statements, want %d", got, want)
	}
	var users, profiles bool
	for _, stmt := range db.executed {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS users") {
			users = true
		}
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS profiles") {
			profiles = true
		}
	}
	if !users || !profiles {
		t.Fatalf("missing table statements: users=%v profiles=%v", users, profiles)
	}
}

func TestEnsureSchemaStopsOnError(t *testing.T) {
	db := &execDB{failOn: "profiles"}
	err := EnsureSchema(context.Background(), db)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(db.executed) != 1 {
		t.Fatalf("executed %d statements after failure, want 1", len(db.executed))
	}
}

func TestEnsureSchemaNilDB(t *testing.T) {
	if err := EnsureSchema(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil db")
	}
}
