// Package journal persists which shader outputs each staging run placed
// into each output tree. The next run diffs its mapping against the journal
// and prunes outputs that are no longer declared, so the shaders directory
// stays consistent without wiping files the stager never wrote.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS staged_shaders (
	tree      TEXT NOT NULL,
	name      TEXT NOT NULL,
	staged_at INTEGER NOT NULL,
	PRIMARY KEY (tree, name)
);`

// Journal is a sqlite-backed ledger of staged shader filenames per tree.
// Not safe for concurrent use; the stager is strictly sequential.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at path. Use ":memory:" for
// an ephemeral journal in tests.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	// One connection only: the stager is sequential, and a :memory:
	// database would otherwise be a fresh empty db per pooled connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal %s: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// Recorded returns the shader output names the previous run staged into
// tree, sorted by name. An unknown tree yields an empty slice.
func (j *Journal) Recorded(tree string) ([]string, error) {
	rows, err := j.db.Query(
		`SELECT name FROM staged_shaders WHERE tree = ? ORDER BY name`, tree)
	if err != nil {
		return nil, fmt.Errorf("journal query %s: %w", tree, err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Record replaces the staged set for tree with names, transactionally.
func (j *Journal) Record(tree string, names []string) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM staged_shaders WHERE tree = ?`, tree); err != nil {
		return fmt.Errorf("journal clear %s: %w", tree, err)
	}
	now := time.Now().Unix()
	for _, name := range names {
		if _, err := tx.Exec(
			`INSERT INTO staged_shaders (tree, name, staged_at) VALUES (?, ?, ?)`,
			tree, name, now); err != nil {
			return fmt.Errorf("journal insert %s/%s: %w", tree, name, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
