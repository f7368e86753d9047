package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const metadataFilename = "metadata.json"

// Metadata records the outcome of the most recent backup run. It lives as
// metadata.json in the backup root and is overwritten on every run.
type Metadata struct {
	Database    string        `json:"database"`
	PlainPath   string        `json:"plain_path,omitempty"`
	CustomPath  string        `json:"custom_path,omitempty"`
	Status      string        `json:"status"`
	Error       string        `json:"error,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Duration    time.Duration `json:"duration_ms"`
	SizeBytes   int64         `json:"size_bytes"`
}

// Complete stamps the record with its final status and timing.
func (m *Metadata) Complete(status string, err error) {
	m.Status = status
	m.CompletedAt = time.Now()
	m.Duration = m.CompletedAt.Sub(m.StartedAt)
	if err != nil {
		m.Error = err.Error()
	}
}

// Load reads a metadata record from the backup root at dirPath.
func (m *Metadata) Load(dirPath string) error {
	filePath := filepath.Join(dirPath, metadataFilename)

	jsonFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open metadata file %q: %w", filePath, err)
	}
	defer jsonFile.Close()

	if err := json.NewDecoder(jsonFile).Decode(m); err != nil {
		return fmt.Errorf("decode metadata JSON: %w", err)
	}
	return nil
}

// Write stores the record as metadata.json under dirPath.
func (m *Metadata) Write(dirPath string) error {
	filePath := filepath.Join(dirPath, metadataFilename)

	jsonFile, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("create metadata file %q: %w", filePath, err)
	}
	defer jsonFile.Close()

	encoder := json.NewEncoder(jsonFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("encode metadata JSON: %w", err)
	}
	return nil
}
