package parser

import "strings"

// ExtractPlaceNames scans a final summary for place marker lines and returns
// the mentioned place names in first-seen order, deduplicated by exact
// post-trim match. Everything from the first parenthesis (the optional
// address) or bracket (the optional timestamp tag) onward is stripped.
//
// The scan is coupled to the prompt templates in this package: a line only
// counts when it starts with PlaceMarker after whitespace and list/bold
// prefixes are trimmed.
func ExtractPlaceNames(summary string) []string {
	var names []string
	seen := make(map[string]struct{})

	for _, line := range strings.Split(summary, "\n") {
		line = strings.TrimSpace(line)
		// Models occasionally render the marker as a list item or bold
		line = strings.TrimLeft(line, "-*# ")
		if !strings.HasPrefix(line, PlaceMarker) {
			continue
		}

		name := strings.TrimPrefix(line, PlaceMarker)
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = name[:i]
		}
		if i := strings.IndexByte(name, '['); i >= 0 {
			name = name[:i]
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}
