package operations

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()

	record := Metadata{
		Database:   "inventory",
		PlainPath:  "/var/backups/sql/inventory-backup-x.sql",
		CustomPath: "/var/backups/inventory-backup-x.backup",
		StartedAt:  time.Now().Add(-time.Minute),
		SizeBytes:  4096,
	}
	record.Complete("success", nil)
	require.NoError(t, record.Write(dir))

	var loaded Metadata
	require.NoError(t, loaded.Load(dir))
	assert.Equal(t, "inventory", loaded.Database)
	assert.Equal(t, "success", loaded.Status)
	assert.Empty(t, loaded.Error)
	assert.Equal(t, int64(4096), loaded.SizeBytes)
}

func TestMetadataCompleteRecordsError(t *testing.T) {
	record := Metadata{Database: "inventory", StartedAt: time.Now()}
	record.Complete("failed", errors.New("pg_dump: exit status 1"))

	assert.Equal(t, "failed", record.Status)
	assert.Equal(t, "pg_dump: exit status 1", record.Error)
	assert.False(t, record.CompletedAt.IsZero())
}

func TestMetadataLoadMissingFile(t *testing.T) {
	var record Metadata
	assert.Error(t, record.Load(t.TempDir()))
}
