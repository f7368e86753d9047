// Package operations implements the backup and restore operations for the
// one configured database, plus the interactive restore session.
package operations

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kebairia/pgward/internal/config"
	"github.com/kebairia/pgward/internal/logger"
	"github.com/kebairia/pgward/internal/postgres"
	"github.com/kebairia/pgward/internal/store"
	"github.com/kebairia/pgward/internal/vault"
)

// ErrTimeout is the cancellation cause when an external invocation exceeds
// the configured backup timeout.
var ErrTimeout = errors.New("operation timed out")

// Option lets you override default settings on an Operator.
type Option func(*Operator)

// Operator is the primary API: it creates, restores, and enumerates backups
// for the single database named by the configuration.
type Operator struct {
	cfg        *config.Config
	store      *store.Store
	client     *postgres.Client
	runner     postgres.CommandRunner
	identifier string
	log        logger.Logger
	now        func() time.Time
}

// WithRunner overrides the command runner used for every tool invocation.
func WithRunner(runner postgres.CommandRunner) Option {
	return func(op *Operator) {
		if runner != nil {
			op.runner = runner
		}
	}
}

// WithClock overrides the timestamp source for backup naming.
func WithClock(now func() time.Time) Option {
	return func(op *Operator) {
		if now != nil {
			op.now = now
		}
	}
}

// WithLogger overrides the logger.
func WithLogger(log logger.Logger) Option {
	return func(op *Operator) {
		if log != nil {
			op.log = log
		}
	}
}

// NewOperator wires the configuration into a ready Operator. It ensures the
// backup directory layout exists, resolves Vault credentials when a vault
// section is configured, and derives the database identifier once; a
// malformed connection string degrades the identifier to unknown-db instead
// of failing.
func NewOperator(cfg *config.Config, opts ...Option) (*Operator, error) {
	op := &Operator{
		cfg:    cfg,
		runner: postgres.NewRunner(),
		log:    logger.Global(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(op)
	}

	op.store = store.New(cfg.Backup.Directory)
	if err := op.store.EnsureDirectories(); err != nil {
		return nil, err
	}

	connString := cfg.Database.URL
	if cfg.Vault.Address != "" && cfg.Vault.CredentialPath != "" {
		resolved, err := resolveVaultCredentials(cfg, connString)
		if err != nil {
			return nil, err
		}
		connString = resolved
	}

	op.identifier = store.DeriveIdentifier(connString)
	op.client = postgres.NewClient(connString, postgres.WithRunner(op.runner))
	return op, nil
}

// resolveVaultCredentials fetches username and password from Vault and
// splices them into the connection string's userinfo.
func resolveVaultCredentials(cfg *config.Config, connString string) (string, error) {
	client, err := vault.NewClient(
		vault.WithAddress(cfg.Vault.Address),
		vault.WithToken(cfg.Vault.Token),
	)
	if err != nil {
		return "", fmt.Errorf("vault client init: %w", err)
	}

	creds, err := client.ReadCredentials(context.Background(), cfg.Vault.CredentialPath)
	if err != nil {
		return "", fmt.Errorf("vault read: %w", err)
	}

	u, err := url.Parse(connString)
	if err != nil {
		return "", fmt.Errorf("apply vault credentials: %w", err)
	}
	u.User = url.UserPassword(creds.Username, creds.Password)
	return u.String(), nil
}

// Identifier returns the derived database identifier used in backup names.
func (op *Operator) Identifier() string { return op.identifier }

// CreateBackup exports the database in both plain and custom format,
// sharing one timestamp. The two dumps run concurrently and both must
// succeed; when one format fails, the other's artifact is left on disk for
// manual inspection rather than cleaned up. On success it returns the plain
// path then the custom path.
func (op *Operator) CreateBackup() (string, string, error) {
	ctx, cancel := context.WithTimeoutCause(context.Background(), op.cfg.Backup.Timeout, ErrTimeout)
	defer cancel()

	timestamp := op.now()
	plainPath := op.store.ArtifactPath(op.identifier, timestamp, store.KindPlain)
	customPath := op.store.ArtifactPath(op.identifier, timestamp, store.KindCustom)

	op.log.Info("backup started",
		"database", op.identifier,
		"plain", plainPath,
		"custom", customPath,
	)

	record := Metadata{
		Database:  op.identifier,
		StartedAt: time.Now(),
	}

	// Plain errgroup, no shared cancel: one format failing must not abort
	// the other mid-dump.
	var g errgroup.Group
	g.Go(func() error { return op.client.DumpPlain(ctx, plainPath) })
	g.Go(func() error { return op.client.DumpCustom(ctx, customPath) })
	if err := g.Wait(); err != nil {
		op.log.Error("backup failed",
			"database", op.identifier,
			"error", err.Error(),
		)
		record.Complete("failed", err)
		if writeErr := record.Write(op.store.Root()); writeErr != nil {
			op.log.Warn("write backup metadata", "error", writeErr.Error())
		}
		return "", "", fmt.Errorf("backup failed for %q: %w", op.identifier, err)
	}

	if op.cfg.Backup.Compress {
		compressed, err := CompressZstd(plainPath)
		if err != nil {
			op.log.Error("backup failed",
				"database", op.identifier,
				"error", err.Error(),
			)
			return "", "", fmt.Errorf("compress plain dump for %q: %w", op.identifier, err)
		}
		plainPath = compressed
	}

	record.PlainPath = plainPath
	record.CustomPath = customPath
	record.SizeBytes = artifactSizes(plainPath, customPath)
	record.Complete("success", nil)
	if err := record.Write(op.store.Root()); err != nil {
		op.log.Warn("write backup metadata", "error", err.Error())
	}

	op.log.Info("backup completed",
		"database", op.identifier,
		"plain", filepath.Base(plainPath),
		"custom", filepath.Base(customPath),
		"timestamp", timestamp.Format(time.RFC3339),
		"duration", record.Duration.String(),
	)
	return plainPath, customPath, nil
}

func artifactSizes(paths ...string) int64 {
	var total int64
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil {
			total += info.Size()
		}
	}
	return total
}

// RestoreBackup loads the artifact at path into the configured database.
// Dispatch is by suffix alone: .backup goes through pg_restore with clean
// semantics, anything else is executed as plain SQL. A .zst artifact is
// decompressed first and dispatched on the inner name.
func (op *Operator) RestoreBackup(path string) error {
	ctx, cancel := context.WithTimeoutCause(context.Background(), op.cfg.Backup.Timeout, ErrTimeout)
	defer cancel()

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("backup file %q not found: %w", path, err)
	}

	if strings.HasSuffix(path, zstSuffix) {
		decompressed, err := DecompressZstd(path)
		if err != nil {
			return fmt.Errorf("decompress %q: %w", path, err)
		}
		defer os.Remove(decompressed)
		path = decompressed
	}

	op.log.Info("restore started",
		"database", op.identifier,
		"source", path,
	)

	start := time.Now()
	var err error
	if strings.HasSuffix(path, store.KindCustom) {
		err = op.client.RestoreClean(ctx, path)
	} else {
		err = op.client.ExecSQL(ctx, path)
	}
	if err != nil {
		op.log.Error("restore failed",
			"database", op.identifier,
			"source", path,
			"error", err.Error(),
		)
		return fmt.Errorf("restore failed for %q: %w", op.identifier, err)
	}

	op.log.Info("restore completed",
		"database", op.identifier,
		"source", path,
		"duration", time.Since(start).String(),
	)
	return nil
}

// ListBackups enumerates the custom-format artifacts in the backup root.
func (op *Operator) ListBackups() ([]string, error) {
	return op.store.List(store.KindCustom)
}

// ListSQLDumps enumerates the plain-text artifacts in the sql subdirectory.
func (op *Operator) ListSQLDumps() ([]string, error) {
	return op.store.List(store.KindPlain)
}

// ScheduledBackup is the job body registered with the scheduler. Failures
// are logged and returned, never raised further; the schedule continues to
// its next firing.
func (op *Operator) ScheduledBackup(ctx context.Context) error {
	op.log.Info("scheduled backup triggered", "database", op.identifier)
	if _, _, err := op.CreateBackup(); err != nil {
		op.log.Error("scheduled backup failed",
			"database", op.identifier,
			"error", err.Error(),
		)
		return err
	}
	return nil
}
