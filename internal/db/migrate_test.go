package db_test

import (
	"context"
	"fmt"
	"testing"

	"golang.org/x/crypto/bcrypt"

	dbfs "github.com/techcare/core/db"
	dbpkg "github.com/techcare/core/internal/db"
)

func migrated(t *testing.T) *dbpkg.DB {
	t.Helper()
	d, err := dbpkg.New(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(context.Background(), d, dbfs.Migrations, dbfs.SeedFiles, bcrypt.MinCost); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
	return d
}

func count(t *testing.T, d *dbpkg.DB, table string) int {
	t.Helper()
	var n int
	if err := d.QueryRow(context.Background(), `SELECT COUNT(1) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestMigrateSeedsDemoData(t *testing.T) {
	d := migrated(t)
	ctx := context.Background()

	if got := count(t, d, "users"); got != 2 {
		t.Fatalf("expected 2 seeded users got %d", got)
	}
	if got := count(t, d, "service_requests"); got != 2 {
		t.Fatalf("expected 2 seeded requests got %d", got)
	}

	var role, hash string
	if err := d.QueryRow(ctx,
		`SELECT user_type, password_hash FROM users WHERE email = ?`, "admin@techcare.com").Scan(&role, &hash); err != nil {
		t.Fatalf("read admin: %v", err)
	}
	if role != "admin" {
		t.Fatalf("expected admin role got %q", role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("admin123")); err != nil {
		t.Fatalf("seed admin password not hashed as expected: %v", err)
	}

	// seeded ready-for-pickup record carries a completion date
	var completion string
	if err := d.QueryRow(ctx,
		`SELECT completion_date FROM service_requests WHERE status = ?`, "Ready for Pickup").Scan(&completion); err != nil {
		t.Fatalf("read seeded request: %v", err)
	}
	if completion == "" {
		t.Fatalf("expected seeded completion date")
	}
}

func TestMigrateIdempotent(t *testing.T) {
	d := migrated(t)

	if err := dbpkg.Migrate(context.Background(), d, dbfs.Migrations, dbfs.SeedFiles, bcrypt.MinCost); err != nil {
		t.Fatalf("second Migrate error: %v", err)
	}
	if got := count(t, d, "users"); got != 2 {
		t.Fatalf("second run must not reseed: got %d users", got)
	}
}

func TestMigrateVersionBumpRecreates(t *testing.T) {
	d := migrated(t)
	ctx := context.Background()

	// leave a trace row, then fake an older schema generation
	if _, err := d.Exec(ctx,
		`INSERT INTO users (email, phone, password_hash, name) VALUES ('trace@example.com', '0700000000', 'h', 'Trace')`); err != nil {
		t.Fatalf("insert trace user: %v", err)
	}
	if _, err := d.Exec(ctx, `UPDATE schema_info SET version = ?`, dbpkg.SchemaVersion-1); err != nil {
		t.Fatalf("downgrade schema_info: %v", err)
	}

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles, bcrypt.MinCost); err != nil {
		t.Fatalf("Migrate after bump error: %v", err)
	}

	// tables were dropped and reseeded: the trace row is gone
	if got := count(t, d, "users"); got != 2 {
		t.Fatalf("expected fresh seed after version bump got %d users", got)
	}
	var version int
	if err := d.QueryRow(ctx, `SELECT version FROM schema_info`).Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != dbpkg.SchemaVersion {
		t.Fatalf("expected version %d got %d", dbpkg.SchemaVersion, version)
	}
}
