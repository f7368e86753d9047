package operations

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRestorer struct {
	backups    []string
	listErr    error
	restoreErr error
	restored   []string
}

func (f *fakeRestorer) ListBackups() ([]string, error) {
	return f.backups, f.listErr
}

func (f *fakeRestorer) RestoreBackup(path string) error {
	f.restored = append(f.restored, path)
	return f.restoreErr
}

func sessionBackups(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("inventory-backup-%d.backup", i))
		require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 2048), 0o644))
		paths = append(paths, path)
	}
	return paths
}

func runSession(t *testing.T, restorer *fakeRestorer, input string) string {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(restorer, strings.NewReader(input), &out)
	require.NoError(t, s.Run())
	return out.String()
}

func TestSessionEmptyInventory(t *testing.T) {
	restorer := &fakeRestorer{}

	out := runSession(t, restorer, "")
	assert.Contains(t, out, "No backups found.")
	assert.NotContains(t, out, "Select a backup")
	assert.Empty(t, restorer.restored)
}

func TestSessionListFailure(t *testing.T) {
	restorer := &fakeRestorer{listErr: errors.New("disk gone")}

	var out bytes.Buffer
	s := NewSession(restorer, strings.NewReader(""), &out)
	assert.Error(t, s.Run())
}

func TestSessionCancellations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"quit sentinel", "q\n"},
		{"quit sentinel uppercase", "Q\n"},
		{"zero index", "0\n"},
		{"out of range", "4\n"},
		{"non-numeric", "three\n"},
		{"empty selection", "\n"},
		{"negative confirmation", "2\nno\n"},
		{"default confirmation", "2\n\n"},
		{"confirmation typo", "2\nyess\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restorer := &fakeRestorer{backups: sessionBackups(t, 3)}

			out := runSession(t, restorer, tt.input)
			assert.Contains(t, out, "Restore cancelled.")
			assert.Empty(t, restorer.restored)
		})
	}
}

func TestSessionConfirmedRestore(t *testing.T) {
	backups := sessionBackups(t, 3)
	restorer := &fakeRestorer{backups: backups}

	out := runSession(t, restorer, "2\nyes\n")

	require.Len(t, restorer.restored, 1)
	assert.Equal(t, backups[1], restorer.restored[0])
	assert.Contains(t, out, "Restored "+filepath.Base(backups[1]))
}

func TestSessionConfirmationCaseInsensitive(t *testing.T) {
	backups := sessionBackups(t, 1)
	restorer := &fakeRestorer{backups: backups}

	runSession(t, restorer, "1\nYES\n")
	assert.Len(t, restorer.restored, 1)
}

func TestSessionDisplaysSizeAndIndex(t *testing.T) {
	restorer := &fakeRestorer{backups: sessionBackups(t, 2)}

	out := runSession(t, restorer, "q\n")
	assert.Contains(t, out, "  1. ")
	assert.Contains(t, out, "  2. ")
	assert.Contains(t, out, "0.00 MB")
}

func TestSessionRestoreFailurePropagates(t *testing.T) {
	restorer := &fakeRestorer{
		backups:    sessionBackups(t, 1),
		restoreErr: errors.New("pg_restore: exit status 1"),
	}

	var out bytes.Buffer
	s := NewSession(restorer, strings.NewReader("1\nyes\n"), &out)
	assert.Error(t, s.Run())
	assert.Len(t, restorer.restored, 1)
}
