package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplitWords_ChunkCount(t *testing.T) {
	tests := []struct {
		name          string
		words         int
		maxChunkChars int
		wantChunks    int
	}{
		{name: "empty text", words: 0, maxChunkChars: 2048, wantChunks: 0},
		{name: "single word", words: 1, maxChunkChars: 2048, wantChunks: 1},
		{name: "exactly one budget", words: 409, maxChunkChars: 2048, wantChunks: 1},
		{name: "one over budget", words: 410, maxChunkChars: 2048, wantChunks: 2},
		{name: "several chunks", words: 1000, maxChunkChars: 500, wantChunks: 10},
		{name: "tiny budget clamps to one word", words: 3, maxChunkChars: 4, wantChunks: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := makeWords(tt.words)
			chunks := SplitWords(text, tt.maxChunkChars)

			if len(chunks) != tt.wantChunks {
				t.Errorf("SplitWords() got %d chunks, want %d", len(chunks), tt.wantChunks)
			}

			// ceil(W / floor(n/5)) must hold for non-empty input
			if tt.words > 0 {
				budget := tt.maxChunkChars / 5
				if budget < 1 {
					budget = 1
				}
				want := (tt.words + budget - 1) / budget
				if len(chunks) != want {
					t.Errorf("chunk count = %d, want ceil(%d/%d) = %d", len(chunks), tt.words, budget, want)
				}
			}
		})
	}
}

func TestSplitWords_PreservesWordSequence(t *testing.T) {
	text := "  the \t quick\nbrown   fox jumps over the lazy dog  "
	chunks := SplitWords(text, 15) // 3 words per chunk

	var got []string
	for _, c := range chunks {
		got = append(got, strings.Fields(c.Content)...)
	}

	want := strings.Fields(text)
	if len(got) != len(want) {
		t.Fatalf("got %d words, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitWords_Positions(t *testing.T) {
	chunks := SplitWords(makeWords(100), 50) // 10 words per chunk

	for i, c := range chunks {
		if c.Position != i {
			t.Errorf("chunk[%d].Position = %d", i, c.Position)
		}
		if strings.TrimSpace(c.Content) == "" {
			t.Errorf("chunk[%d] is empty", i)
		}
	}
}

func makeWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}
