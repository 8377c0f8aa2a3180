// Package langdetect identifies the language of transcribed text. It is a
// fallback for API replies that omit the detected language.
package langdetect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
	_ "github.com/pemistahl/lingua-go/language-models/de"
	_ "github.com/pemistahl/lingua-go/language-models/en"
	_ "github.com/pemistahl/lingua-go/language-models/es"
	_ "github.com/pemistahl/lingua-go/language-models/fr"
	_ "github.com/pemistahl/lingua-go/language-models/hi"
	_ "github.com/pemistahl/lingua-go/language-models/ja"
	_ "github.com/pemistahl/lingua-go/language-models/ko"
	_ "github.com/pemistahl/lingua-go/language-models/pt"
	_ "github.com/pemistahl/lingua-go/language-models/zh"
)

// candidates mirrors the languages offered as transcription hints.
var candidates = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Hindi,
	lingua.Japanese,
	lingua.Korean,
	lingua.Portuguese,
	lingua.Chinese,
}

// The detector loads language models on first use; build it lazily and once.
var detector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(candidates...).
		Build()
})

// Detect returns the ISO 639-1 code and English name of the detected
// language, or ("auto", "") when detection is inconclusive.
func Detect(text string) (code, name string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "auto", ""
	}
	lang, ok := detector().DetectLanguageOf(text)
	if !ok {
		return "auto", ""
	}
	return strings.ToLower(lang.IsoCode639_1().String()), lang.String()
}
