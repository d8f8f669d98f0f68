package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-scriptgen/pkg/compose"
)

// ErrNotFound is returned when a snippet name is not in the store.
var ErrNotFound = errors.New("store: snippet not found")

// Snippet is a stored template: raw text plus its ordered dependency
// declarations.
type Snippet struct {
	Name         string
	Content      string
	Dependencies []string
}

// SetupSchema initializes the snippets table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS snippets (
    name TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    dependencies TEXT NOT NULL DEFAULT '[]'
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("store: could not create schema: %w", err)
	}
	return nil
}

// Store is a snippet library backed by a SQL database. It holds prepared
// statements for the hot paths and is safe for concurrent readers.
type Store struct {
	db         *sql.DB
	logger     *slog.Logger
	stmtGet    *sql.Stmt
	stmtList   *sql.Stmt
	stmtPut    *sql.Stmt
	stmtDelete *sql.Stmt
}

// New prepares a Store on top of an open database. The schema must already be
// set up. A nil logger disables logging.
func New(db *sql.DB, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Store{db: db, logger: logger}

	var err error
	if s.stmtGet, err = db.Prepare("SELECT content, dependencies FROM snippets WHERE name = ?"); err != nil {
		return nil, fmt.Errorf("store: prepare get: %w", err)
	}
	if s.stmtList, err = db.Prepare("SELECT name FROM snippets ORDER BY name"); err != nil {
		return nil, fmt.Errorf("store: prepare list: %w", err)
	}
	if s.stmtPut, err = db.Prepare(`
INSERT INTO snippets (name, content, dependencies) VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET content = excluded.content, dependencies = excluded.dependencies
`); err != nil {
		return nil, fmt.Errorf("store: prepare put: %w", err)
	}
	if s.stmtDelete, err = db.Prepare("DELETE FROM snippets WHERE name = ?"); err != nil {
		return nil, fmt.Errorf("store: prepare delete: %w", err)
	}

	return s, nil
}

// Close releases the prepared statements. The database itself stays open;
// the caller owns it.
func (s *Store) Close() {
	for _, stmt := range []*sql.Stmt{s.stmtGet, s.stmtList, s.stmtPut, s.stmtDelete} {
		if stmt != nil {
			_ = stmt.Close()
		}
	}
}

// Put inserts or replaces a snippet.
func (s *Store) Put(ctx context.Context, snippet Snippet) error {
	if snippet.Name == "" {
		return fmt.Errorf("store: snippet name is required")
	}

	deps, err := json.Marshal(dependenciesOrEmpty(snippet.Dependencies))
	if err != nil {
		return fmt.Errorf("store: encode dependencies for %q: %w", snippet.Name, err)
	}

	if _, err := s.stmtPut.ExecContext(ctx, snippet.Name, snippet.Content, string(deps)); err != nil {
		return fmt.Errorf("store: put %q: %w", snippet.Name, err)
	}

	s.logger.InfoContext(ctx, "snippet stored",
		slog.String("name", snippet.Name),
		slog.Int("dependencies", len(snippet.Dependencies)),
	)
	return nil
}

// Get retrieves a snippet by name, returning ErrNotFound when absent.
func (s *Store) Get(ctx context.Context, name string) (Snippet, error) {
	var content, rawDeps string
	err := s.stmtGet.QueryRowContext(ctx, name).Scan(&content, &rawDeps)
	if errors.Is(err, sql.ErrNoRows) {
		return Snippet{}, fmt.Errorf("store: get %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Snippet{}, fmt.Errorf("store: get %q: %w", name, err)
	}

	var deps []string
	if err := json.Unmarshal([]byte(rawDeps), &deps); err != nil {
		return Snippet{}, fmt.Errorf("store: decode dependencies for %q: %w", name, err)
	}
	if len(deps) == 0 {
		deps = nil
	}

	return Snippet{Name: name, Content: content, Dependencies: deps}, nil
}

// List returns the stored snippet names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	return names, nil
}

// Delete removes a snippet. Deleting an absent name is not an error.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.stmtDelete.ExecContext(ctx, name); err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	s.logger.InfoContext(ctx, "snippet deleted", slog.String("name", name))
	return nil
}

// Handle loads a snippet and parses it into a compose handle carrying the
// snippet's dependency declarations.
func (s *Store) Handle(ctx context.Context, name string) (*compose.Handle, error) {
	snippet, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	handle, err := compose.Parse(snippet.Content)
	if err != nil {
		return nil, fmt.Errorf("store: parse snippet %q: %w", name, err)
	}
	for _, dep := range snippet.Dependencies {
		handle.WithDependency(dep)
	}
	return handle, nil
}

func dependenciesOrEmpty(deps []string) []string {
	if deps == nil {
		return []string{}
	}
	return deps
}
