// Package language holds the static code/name directory consumed by
// translation prompt shaping and detection response mapping.
package language

import "strings"

// CodeUnknown is returned when a free-text language name matches no entry.
const CodeUnknown = "unknown"

type entry struct {
	code string
	name string
}

// directory covers the major world languages plus the Chinese variants the
// translation UI offers. Read-only after startup.
var directory = []entry{
	{"en", "English"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
	{"it", "Italian"},
	{"pt", "Portuguese"},
	{"ru", "Russian"},
	{"ja", "Japanese"},
	{"ko", "Korean"},
	{"zh-CN", "Chinese (Simplified)"},
	{"zh-TW", "Chinese (Traditional)"},
	{"ar", "Arabic"},
	{"hi", "Hindi"},
	{"bn", "Bengali"},
	{"tr", "Turkish"},
	{"vi", "Vietnamese"},
	{"th", "Thai"},
	{"nl", "Dutch"},
	{"pl", "Polish"},
	{"sv", "Swedish"},
	{"da", "Danish"},
	{"no", "Norwegian"},
	{"fi", "Finnish"},
	{"el", "Greek"},
	{"he", "Hebrew"},
	{"id", "Indonesian"},
	{"ms", "Malay"},
	{"uk", "Ukrainian"},
	{"cs", "Czech"},
	{"ro", "Romanian"},
	{"hu", "Hungarian"},
	{"fa", "Persian"},
	{"ur", "Urdu"},
	{"sw", "Swahili"},
	{"tl", "Filipino"},
}

var byCode map[string]string
var byName map[string]string

func init() {
	byCode = make(map[string]string, len(directory))
	byName = make(map[string]string, len(directory))
	for _, e := range directory {
		byCode[e.code] = e.name
		byName[strings.ToLower(e.name)] = e.code
	}
}

// Name returns the English name for a language code, or "" if unknown.
func Name(code string) string {
	return byCode[code]
}

// Known reports whether the code is in the directory.
func Known(code string) bool {
	_, ok := byCode[code]
	return ok
}

// CodeForName maps a free-text English language name back to its code,
// case-insensitively. Unmatched names resolve to CodeUnknown rather than an
// error, since the input is a model's free-form detection answer.
func CodeForName(name string) string {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	trimmed = strings.TrimSuffix(trimmed, ".")
	if code, ok := byName[trimmed]; ok {
		return code
	}
	return CodeUnknown
}

// All returns the full code to English name mapping.
func All() map[string]string {
	out := make(map[string]string, len(byCode))
	for code, name := range byCode {
		out[code] = name
	}
	return out
}
