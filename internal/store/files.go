package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Files persists intermediate pipeline artifacts for inspection: the raw
// chunks fed to the model and the final summary text.
type Files struct {
	ChunksDir    string
	SummariesDir string
}

// SaveChunks writes each chunk to chunk_<n>.txt (1-based) in the chunks
// directory, creating it if needed.
func (f Files) SaveChunks(chunks []string) error {
	if err := os.MkdirAll(f.ChunksDir, 0o755); err != nil {
		return fmt.Errorf("create chunks dir: %w", err)
	}
	for i, chunk := range chunks {
		path := filepath.Join(f.ChunksDir, fmt.Sprintf("chunk_%d.txt", i+1))
		if err := os.WriteFile(path, []byte(chunk), 0o644); err != nil {
			return fmt.Errorf("write chunk %d: %w", i+1, err)
		}
	}
	return nil
}

// SaveSummary writes the final summary to a timestamped file and returns
// its path.
func (f Files) SaveSummary(summary string) (string, error) {
	if err := os.MkdirAll(f.SummariesDir, 0o755); err != nil {
		return "", fmt.Errorf("create summaries dir: %w", err)
	}
	path := filepath.Join(f.SummariesDir,
		fmt.Sprintf("final_summary_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}
