package db_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dbpkg "github.com/techcare/core/internal/db"
)

func openDB(t *testing.T) *dbpkg.DB {
	t.Helper()
	d, err := dbpkg.New(context.Background(), fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestExecAndQuery(t *testing.T) {
	d := openDB(t)
	ctx := context.Background()

	if _, err := d.Exec(ctx, `CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := d.Exec(ctx, `INSERT INTO t (v) VALUES (?)`, "hello"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var v string
	if err := d.QueryRow(ctx, `SELECT v FROM t WHERE id = 1`).Scan(&v); err != nil {
		t.Fatalf("query row: %v", err)
	}
	if v != "hello" {
		t.Fatalf("got %q", v)
	}

	rows, err := d.QueryRows(ctx, `SELECT v FROM t`)
	if err != nil {
		t.Fatalf("query rows: %v", err)
	}
	defer rows.Close()
	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows err: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row got %d", n)
	}
}

func TestNewBadPath(t *testing.T) {
	_, err := dbpkg.New(context.Background(), "file:/nonexistent-dir/no/such/db.sqlite", nil)
	if err == nil {
		t.Fatalf("expected error for unopenable path")
	}
}

// Concurrent writers against the same table must serialize without losing
// increments.
func TestConcurrentWriters(t *testing.T) {
	d := openDB(t)
	ctx := context.Background()

	if _, err := d.Exec(ctx, `CREATE TABLE counters (id INTEGER PRIMARY KEY, n INTEGER NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := d.Exec(ctx, `INSERT INTO counters (id, n) VALUES (1, 0)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var wg sync.WaitGroup
	const writers = 20
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Exec(ctx, `UPDATE counters SET n = n + 1 WHERE id = 1`); err != nil {
				t.Errorf("concurrent update: %v", err)
			}
		}()
	}
	wg.Wait()

	var n int
	if err := d.QueryRow(ctx, `SELECT n FROM counters WHERE id = 1`).Scan(&n); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	if n != writers {
		t.Fatalf("lost updates: got %d want %d", n, writers)
	}
}
