package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveChunks(t *testing.T) {
	dir := t.TempDir()
	f := Files{ChunksDir: filepath.Join(dir, "chunks")}

	if err := f.SaveChunks([]string{"first chunk", "second chunk"}); err != nil {
		t.Fatalf("SaveChunks failed: %v", err)
	}

	for i, want := range []string{"first chunk", "second chunk"} {
		path := filepath.Join(f.ChunksDir, fmt.Sprintf("chunk_%d.txt", i+1))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != want {
			t.Errorf("chunk %d = %q, want %q", i+1, data, want)
		}
	}
}

func TestSaveSummary(t *testing.T) {
	dir := t.TempDir()
	f := Files{SummariesDir: filepath.Join(dir, "summaries")}

	path, err := f.SaveSummary("the final summary")
	if err != nil {
		t.Fatalf("SaveSummary failed: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), "final_summary_") {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if string(data) != "the final summary" {
		t.Errorf("summary content = %q", data)
	}
}
