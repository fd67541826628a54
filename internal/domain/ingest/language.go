package ingest

// DefaultLanguage is assumed whenever a request omits a language name.
const DefaultLanguage = "English"

var ocrLanguages = map[string]string{
	"English":  "eng",
	"Hindi":    "hin",
	"French":   "fra",
	"Spanish":  "spa",
	"German":   "deu",
	"Chinese":  "chi_sim",
	"Japanese": "jpn",
}

// OCRLanguage maps a human readable language name to a tesseract language
// code. Unrecognized names fall back to English.
func OCRLanguage(name string) string {
	if code, ok := ocrLanguages[name]; ok {
		return code
	}
	return ocrLanguages[DefaultLanguage]
}
