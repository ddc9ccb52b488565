// Package parser contains the pure string-processing parts of the pipeline:
// word-budget chunking, the summary prompt templates, and the place-marker
// extraction that parses them back. Prompt wording and marker strings are
// tightly coupled and therefore live together in this package.
package parser

import (
	"strings"

	"tripnotes/internal/models"
)

// charsPerWord is the heuristic average word length used to translate a
// character budget into a word budget.
const charsPerWord = 5

// SplitWords splits text into word-bounded chunks sized for one completion
// call. maxChunkChars is a character budget; each chunk targets
// maxChunkChars/5 words assuming ~5 characters per word. The last chunk may
// be shorter. Words are never split and sentence boundaries are ignored.
func SplitWords(text string, maxChunkChars int) []models.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	budget := maxChunkChars / charsPerWord
	if budget < 1 {
		budget = 1
	}

	numChunks := (len(words) + budget - 1) / budget
	chunks := make([]models.Chunk, 0, numChunks)
	for i := 0; i < numChunks; i++ {
		start := i * budget
		end := start + budget
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, models.Chunk{
			Content:  strings.Join(words[start:end], " "),
			Position: i,
		})
	}
	return chunks
}
