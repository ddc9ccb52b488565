package summarize

import "github.com/RadhiFadlillah/whatlanggo"

// whatlanggo reports ISO 639-3; prompts and configuration speak ISO 639-1.
var iso3to1 = map[string]string{
	"eng": "en",
	"kor": "ko",
	"jpn": "ja",
	"cmn": "zh",
	"spa": "es",
	"fra": "fr",
	"deu": "de",
	"ita": "it",
	"por": "pt",
	"rus": "ru",
	"vie": "vi",
	"tha": "th",
	"ind": "id",
	"nld": "nl",
	"arb": "ar",
	"tur": "tr",
	"hin": "hi",
}

// DetectLanguage returns the ISO 639-1 code of the dominant language in
// text, or "" when detection is unreliable or the language is not mapped.
func DetectLanguage(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return iso3to1[info.Lang.Iso6393()]
}
