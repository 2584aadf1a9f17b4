package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SchemaVersion is the current schema generation. Bumping it drops and
// recreates both tables on the next Migrate call; data loss on upgrade is
// accepted by design of the source system.
const SchemaVersion = 3

// Migrate brings the database to SchemaVersion and seeds demo data on first
// initialization. Migration files are read from migrationFS under
// "migrations/", seed files from seedFS under "seed/".
func Migrate(ctx context.Context, d *DB, migrationFS embed.FS, seedFS embed.FS, bcryptCost int) error {
	if _, err := d.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_info (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_info: %w", err)
	}

	var stored int
	found := true
	row := d.QueryRow(ctx, `SELECT version FROM schema_info LIMIT 1`)
	if err := row.Scan(&stored); err != nil {
		found = false
	}

	if found && stored == SchemaVersion {
		return nil
	}

	if found {
		// version bump: drop and recreate both tables, losing existing data
		d.logger.Warn("schema version changed, recreating tables",
			slog.Int("stored", stored), slog.Int("current", SchemaVersion))
		for _, stmt := range []string{
			`DROP TABLE IF EXISTS service_requests`,
			`DROP TABLE IF EXISTS users`,
		} {
			if _, err := d.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("drop table: %w", err)
			}
		}
		if _, err := d.Exec(ctx, `DELETE FROM schema_info`); err != nil {
			return fmt.Errorf("reset schema_info: %w", err)
		}
	}

	if err := applyMigrations(ctx, d, migrationFS); err != nil {
		return err
	}
	if _, err := d.Exec(ctx, `INSERT INTO schema_info (version) VALUES (?)`, SchemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return seed(ctx, d, seedFS, bcryptCost)
}

func applyMigrations(ctx context.Context, d *DB, migrationFS embed.FS) error {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		b, err := fs.ReadFile(migrationFS, path.Join("migrations", fname))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", fname, err)
		}
		if _, err := d.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec migration %s: %w", fname, err)
		}
	}

	return nil
}

// seed inserts the demo customer, the demo admin and the sample service
// requests. Users are hashed here instead of shipping literal bcrypt hashes
// in seed SQL.
func seed(ctx context.Context, d *DB, seedFS embed.FS, bcryptCost int) error {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	var users int
	if err := d.QueryRow(ctx, `SELECT COUNT(1) FROM users`).Scan(&users); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if users > 0 {
		return nil
	}

	demo := []struct {
		email, phone, password, name, role string
	}{
		{"demo@techcare.com", "1234567890", "demo123", "Demo User", "customer"},
		{"admin@techcare.com", "0771234567", "admin123", "TechCare Admin", "admin"},
	}
	for _, u := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		if _, err := d.Exec(ctx,
			`INSERT INTO users (email, phone, password_hash, name, user_type) VALUES (?, ?, ?, ?, ?)`,
			u.email, u.phone, string(hash), u.name, u.role); err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	entries, err := fs.ReadDir(seedFS, "seed")
	if err != nil {
		// no seed files shipped; demo users alone are fine
		return nil
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, fname := range files {
		b, err := fs.ReadFile(seedFS, path.Join("seed", fname))
		if err != nil {
			return fmt.Errorf("read seed %s: %w", fname, err)
		}
		if _, err := d.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec seed %s: %w", fname, err)
		}
	}

	return nil
}
