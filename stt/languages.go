package stt

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language pairs an ISO 639-1 code with its English display name.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// supportedCodes are the language hints offered in settings; the API
// accepts more, these are just the curated choices.
var supportedCodes = []string{"en", "es", "fr", "de", "hi", "ja", "ko", "pt", "zh"}

// Languages returns the selectable language hints, auto-detect first.
func Languages() []Language {
	out := make([]Language, 0, len(supportedCodes)+1)
	out = append(out, Language{Code: AutoLanguage, Name: "Auto Detect"})
	namer := display.English.Languages()
	for _, code := range supportedCodes {
		out = append(out, Language{
			Code: code,
			Name: namer.Name(language.MustParse(code)),
		})
	}
	return out
}

// ValidLanguage reports whether code is "auto" or a parseable language tag.
func ValidLanguage(code string) bool {
	if code == "" || code == AutoLanguage {
		return true
	}
	_, err := language.Parse(code)
	return err == nil
}
