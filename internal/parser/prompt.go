package parser

import (
	"fmt"
	"strings"
)

// Marker phrases emitted by the summary prompts and recognized by
// ExtractPlaceNames. The extractor keys on these exact strings, so prompt
// wording and markers must only ever change together.
const (
	// PlaceMarker introduces a visited place line in the final summary.
	PlaceMarker = "Visited place:"

	// DescriptionMarker introduces the nested place description bullet.
	DescriptionMarker = "Place description:"
)

// System prompts for the two summarization stages.
const (
	ChunkSystemPrompt = "You are a travel expert who provides detailed recommendations for places to visit, " +
		"foods to eat, precautions, and suggestions based on video transcripts."

	ReduceSystemPrompt = "You are an expert summary writer who strictly adheres to the provided format."
)

// languageNames maps ISO 639-1 codes to the names used inside prompts.
var languageNames = map[string]string{
	"ko": "Korean",
	"en": "English",
	"ja": "Japanese",
	"zh": "Chinese",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
}

// LanguageName returns the prompt-facing name for an ISO 639-1 code,
// falling back to the code itself.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

// TranslationNote returns the instruction prepended to a chunk prompt when
// the chunk's detected language differs from the summary language.
func TranslationNote(summaryLang string) string {
	return fmt.Sprintf("The transcript below is not in %s. Translate all extracted information into %s.\n\n",
		LanguageName(summaryLang), LanguageName(summaryLang))
}

// ChunkPrompt builds the per-chunk extraction prompt. translationNote may be
// empty. The example block fixes the output format: one marker line per
// visited place with optional parenthesized address and timestamp tag, and
// nested bullets for detail. ExtractPlaceNames depends on this format.
func ChunkPrompt(transcript, summaryLang, translationNote string) string {
	var b strings.Builder
	b.WriteString(translationNote)
	fmt.Fprintf(&b, `Below is the transcript of a travel video.
Analyze it and write up the visited places, foods eaten, precautions, and recommendations.

Requirements:
1. Write each category (place, food, precaution, recommendation) in detail.
2. If a place has no food, precautions, or recommendations, skip those bullets.
3. Collect standalone precautions under a separate precautions section.
4. Collect standalone recommendations under a separate recommendations section.
5. Include the real address of a place whenever you know it.
6. Ground every place description in what the speaker actually said, including their experience and opinions.
7. Keep the "%s" and "%s" marker lines exactly as shown; write all descriptive text in %s.

Output format (example):

%s Sumida Tower (address) [00:12:34]
- %s the landmark observation tower of the area; the creator visited on a clear day and could see Mount Fuji, and praised the night view.
- Food eaten: Ichiran ramen
    - Description: rich broth and chewy noodles, served in private booths.
- Precaution: avoid peak hours
    - Description: the area gets crowded on weekends and holidays; weekdays or early mornings are better.
- Recommendation: visit the observation deck
    - Description: the best spot for night photography of the city.

Transcript:
%s

Based on this transcript, write the information following the requirements above. Place descriptions must reflect what the speaker actually said and experienced.`,
		PlaceMarker, DescriptionMarker, LanguageName(summaryLang),
		PlaceMarker, DescriptionMarker, transcript)
	return b.String()
}

// ReducePrompt builds the second-stage prompt that merges all per-chunk
// summaries into one final summary without dropping information.
func ReducePrompt(combinedSummaries, summaryLang string) string {
	return fmt.Sprintf(`Below are summaries produced from several transcript chunks.
Consolidate them into one final summary in the exact same format, keeping every piece of information.
Merge duplicate places into a single "%s" entry. Write all descriptive text in %s.

Chunk summaries:
%s

Final summary:`, PlaceMarker, LanguageName(summaryLang), combinedSummaries)
}
