package operations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressZstdReplacesOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.sql")
	content := []byte("CREATE TABLE t (id int);\nINSERT INTO t VALUES (1);\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	compressed, err := CompressZstd(path)
	require.NoError(t, err)
	assert.Equal(t, path+".zst", compressed)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "original should be removed")

	restored, err := DecompressZstd(compressed)
	require.NoError(t, err)
	assert.Equal(t, path, restored)

	got, err := os.ReadFile(restored)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	// The archive survives decompression.
	_, err = os.Stat(compressed)
	assert.NoError(t, err)
}

func TestDecompressZstdRejectsWrongSuffix(t *testing.T) {
	_, err := DecompressZstd("/tmp/dump.sql")
	assert.Error(t, err)
}
