package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRunner struct {
	name string
	args []string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.name = name
	r.args = args
	return nil, nil
}

func TestClientInvocations(t *testing.T) {
	const conn = "postgres://admin@localhost:5432/inventory"

	tests := []struct {
		name     string
		invoke   func(c *Client) error
		wantTool string
		wantArgs []string
	}{
		{
			name:     "plain dump",
			invoke:   func(c *Client) error { return c.DumpPlain(context.Background(), "/tmp/out.sql") },
			wantTool: "pg_dump",
			wantArgs: []string{"-d", conn, "-F", "p", "-f", "/tmp/out.sql"},
		},
		{
			name:     "custom dump",
			invoke:   func(c *Client) error { return c.DumpCustom(context.Background(), "/tmp/out.backup") },
			wantTool: "pg_dump",
			wantArgs: []string{"-d", conn, "-F", "c", "-f", "/tmp/out.backup"},
		},
		{
			name:     "clean restore",
			invoke:   func(c *Client) error { return c.RestoreClean(context.Background(), "/tmp/out.backup") },
			wantTool: "pg_restore",
			wantArgs: []string{"-d", conn, "--clean", "--if-exists", "/tmp/out.backup"},
		},
		{
			name:     "plain sql execution",
			invoke:   func(c *Client) error { return c.ExecSQL(context.Background(), "/tmp/out.sql") },
			wantTool: "psql",
			wantArgs: []string{"-d", conn, "-v", "ON_ERROR_STOP=1", "-f", "/tmp/out.sql"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &recordingRunner{}
			c := NewClient(conn, WithRunner(runner))

			require.NoError(t, tt.invoke(c))
			assert.Equal(t, tt.wantTool, runner.name)
			assert.Equal(t, tt.wantArgs, runner.args)
		})
	}
}
