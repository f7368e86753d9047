// Package store manages the on-disk backup layout: a root directory for
// custom-format dumps and a nested sql directory for plain-text dumps.
package store

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Artifact kinds, keyed by file suffix. Custom-format dumps live in the
// root directory, plain SQL dumps in the sql subdirectory.
const (
	KindCustom = ".backup"
	KindPlain  = ".sql"
)

const sqlSubdir = "sql"

// SentinelIdentifier names backup files when the connection string cannot
// be parsed. Derivation degrades to it instead of failing startup.
const SentinelIdentifier = "unknown-db"

// Store derives artifact paths under a fixed root and enumerates what is
// already there. It never touches the database itself.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) Root() string { return s.root }

func (s *Store) SQLDir() string { return filepath.Join(s.root, sqlSubdir) }

// EnsureDirectories creates the backup root and its sql subdirectory if
// missing. Calling it on an existing layout is a no-op.
func (s *Store) EnsureDirectories() error {
	for _, dir := range []string{s.root, s.SQLDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create backup directory %q: %w", dir, err)
		}
	}
	return nil
}

// DeriveIdentifier extracts the database name from a connection string by
// taking the URL path with its leading separator stripped. Any parse
// failure, or an empty connection string, yields SentinelIdentifier.
func DeriveIdentifier(connectionString string) string {
	u, err := url.Parse(connectionString)
	if err != nil {
		return SentinelIdentifier
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return SentinelIdentifier
	}
	return name
}

// ArtifactPath builds the target path for one artifact of the given kind:
// <identifier>-backup-<timestamp> plus the kind suffix, with the RFC 3339
// timestamp made filesystem-safe by replacing colons and periods.
func (s *Store) ArtifactPath(identifier string, ts time.Time, kind string) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(ts.Format(time.RFC3339))
	name := fmt.Sprintf("%s-backup-%s%s", identifier, stamp, kind)
	if kind == KindPlain {
		return filepath.Join(s.SQLDir(), name)
	}
	return filepath.Join(s.root, name)
}

// List returns the full paths of all artifacts of the given kind, in the
// directory's native listing order. Callers must not assume the result is
// chronological.
func (s *Store) List(kind string) ([]string, error) {
	dir := s.root
	if kind == KindPlain {
		dir = s.SQLDir()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), kind) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
