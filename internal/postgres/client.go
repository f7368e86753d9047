// Package postgres shells out to the PostgreSQL client tools: pg_dump for
// exports, pg_restore for custom-format restores, psql for plain SQL.
package postgres

import (
	"context"
)

// Format strings as understood by pg_dump -F.
const (
	formatPlain  = "p"
	formatCustom = "c"
)

// ClientOption lets you override default settings on a Client.
type ClientOption func(*Client)

// Client runs the PostgreSQL tools against one connection string.
type Client struct {
	connString string
	runner     CommandRunner
}

// NewClient returns a Client for the given connection string. The default
// runner executes the real tools.
func NewClient(connString string, opts ...ClientOption) *Client {
	c := &Client{
		connString: connString,
		runner:     NewRunner(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithRunner overrides the command runner.
func WithRunner(runner CommandRunner) ClientOption {
	return func(c *Client) {
		if runner != nil {
			c.runner = runner
		}
	}
}

// DumpPlain exports the database as executable SQL statements into target.
func (c *Client) DumpPlain(ctx context.Context, target string) error {
	_, err := c.runner.Run(ctx, "pg_dump",
		"-d", c.connString,
		"-F", formatPlain,
		"-f", target,
	)
	return err
}

// DumpCustom exports the database in pg_dump's compressed custom format
// into target.
func (c *Client) DumpCustom(ctx context.Context, target string) error {
	_, err := c.runner.Run(ctx, "pg_dump",
		"-d", c.connString,
		"-F", formatCustom,
		"-f", target,
	)
	return err
}

// RestoreClean loads a custom-format dump, dropping existing objects before
// recreating them. --if-exists keeps the drop phase quiet about objects
// that are already gone.
func (c *Client) RestoreClean(ctx context.Context, source string) error {
	_, err := c.runner.Run(ctx, "pg_restore",
		"-d", c.connString,
		"--clean",
		"--if-exists",
		source,
	)
	return err
}

// ExecSQL runs a plain SQL file against the database, stopping at the first
// failing statement.
func (c *Client) ExecSQL(ctx context.Context, source string) error {
	_, err := c.runner.Run(ctx, "psql",
		"-d", c.connString,
		"-v", "ON_ERROR_STOP=1",
		"-f", source,
	)
	return err
}
