// Package repository stores nodes in a SQL database and serves as the
// fallback finder when no search engine strategy applies.
package repository

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/ncobase/nodesearch/validator"
)

// RootPath is the path of every workspace root node
const RootPath = "/"

var ErrInvalidPath = errors.New("repository: node path must be absolute")

const schema = `CREATE TABLE IF NOT EXISTS nodes (
	identifier VARCHAR(64) NOT NULL,
	workspace VARCHAR(64) NOT NULL,
	path VARCHAR(512) NOT NULL,
	parent_path VARCHAR(512) NOT NULL,
	node_type VARCHAR(255) NOT NULL,
	properties TEXT NOT NULL,
	PRIMARY KEY (workspace, path)
)`

// Store persists nodes per workspace
type Store struct {
	db     *sql.DB
	driver string
}

// NewStore creates a store on db. driver is the configured database driver
// name and selects the placeholder style.
func NewStore(db *sql.DB, driver string) *Store {
	return &Store{db: db, driver: driver}
}

// Migrate creates the nodes table when missing
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("repository: migrate: %w", err)
	}
	return nil
}

// Save inserts or replaces nodes in workspace. Nodes without an identifier
// get a generated one.
func (s *Store) Save(ctx context.Context, workspace string, nodes ...*nodesearch.Node) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if err := validator.Var(n.Path, "required,startswith=/"); err != nil {
				return fmt.Errorf("%w: %q", ErrInvalidPath, n.Path)
			}
			if n.Identifier == "" {
				n.Identifier = uuid.NewString()
			}
			p := path.Clean(n.Path)

			props, err := encodeProperties(n.Properties)
			if err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM nodes WHERE workspace = ? AND path = ?`), workspace, p); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				s.rebind(`INSERT INTO nodes (identifier, workspace, path, parent_path, node_type, properties) VALUES (?, ?, ?, ?, ?, ?)`),
				n.Identifier, workspace, p, parentPath(p), n.NodeType, props,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns the node at an absolute path, or nil when there is none
func (s *Store) Get(ctx context.Context, workspace, nodePath string) (*nodesearch.Node, error) {
	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT identifier, path, node_type, properties FROM nodes WHERE workspace = ? AND path = ?`),
		workspace, path.Clean(nodePath))

	n, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get %s: %w", nodePath, err)
	}
	return n, nil
}

// Context returns the search context of workspace
func (s *Store) Context(workspace string) *Context {
	return &Context{store: s, workspace: workspace}
}

// withTx runs fn in a transaction, rolling back on error
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rollback err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// rebind rewrites ? placeholders to $n for postgres
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNode(row scanner) (*nodesearch.Node, error) {
	var (
		n     nodesearch.Node
		props string
	)
	if err := row.Scan(&n.Identifier, &n.Path, &n.NodeType, &props); err != nil {
		return nil, err
	}
	if props != "" {
		if err := json.Unmarshal([]byte(props), &n.Properties); err != nil {
			return nil, fmt.Errorf("decode properties of %s: %w", n.Path, err)
		}
	}
	return &n, nil
}

func encodeProperties(props map[string]any) (string, error) {
	if props == nil {
		props = map[string]any{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(props); err != nil {
		return "", fmt.Errorf("repository: encode properties: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func parentPath(p string) string {
	if p == RootPath {
		return ""
	}
	return path.Dir(p)
}
