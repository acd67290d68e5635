package language

import (
	"sort"
	"strings"
)

// Names maps language codes to the English language name used in prompts.
var Names = map[string]string{
	"af":       "Afrikaans",
	"sq":       "Albanian",
	"am":       "Amharic",
	"ar":       "Arabic",
	"hy":       "Armenian",
	"as":       "Assamese",
	"az":       "Azerbaijani",
	"eu":       "Basque",
	"be":       "Belarusian",
	"bn":       "Bengali",
	"bs":       "Bosnian",
	"bg":       "Bulgarian",
	"ca":       "Catalan",
	"ceb":      "Cebuano",
	"zh":       "Chinese (Simplified)",
	"zh-Hans":  "Chinese (Simplified)",
	"zh-Hant":  "Chinese (Traditional)",
	"co":       "Corsican",
	"hr":       "Croatian",
	"cs":       "Czech",
	"da":       "Danish",
	"dv":       "Dhivehi",
	"nl":       "Dutch",
	"en":       "English",
	"eo":       "Esperanto",
	"et":       "Estonian",
	"fil":      "Filipino",
	"fi":       "Finnish",
	"fr":       "French",
	"fy":       "Frisian",
	"gl":       "Galician",
	"ka":       "Georgian",
	"de":       "German",
	"el":       "Greek",
	"gu":       "Gujarati",
	"ht":       "Haitian Creole",
	"ha":       "Hausa",
	"haw":      "Hawaiian",
	"iw":       "Hebrew",
	"hi":       "Hindi",
	"hmn":      "Hmong",
	"hu":       "Hungarian",
	"is":       "Icelandic",
	"ig":       "Igbo",
	"id":       "Indonesian",
	"ga":       "Irish",
	"it":       "Italian",
	"ja":       "Japanese",
	"jv":       "Javanese",
	"kn":       "Kannada",
	"kk":       "Kazakh",
	"km":       "Khmer",
	"ko":       "Korean",
	"kri":      "Krio",
	"ku":       "Kurdish",
	"ky":       "Kyrgyz",
	"lo":       "Lao",
	"la":       "Latin",
	"lv":       "Latvian",
	"lt":       "Lithuanian",
	"lb":       "Luxembourgish",
	"mk":       "Macedonian",
	"mg":       "Malagasy",
	"ms":       "Malay",
	"ml":       "Malayalam",
	"mt":       "Maltese",
	"mi":       "Maori",
	"mr":       "Marathi",
	"mni-Mtei": "Meiteilon (Manipuri)",
	"mn":       "Mongolian",
	"my":       "Myanmar (Burmese)",
	"ne":       "Nepali",
	"no":       "Norwegian",
	"ny":       "Nyanja (Chichewa)",
	"or":       "Odia (Oriya)",
	"ps":       "Pashto",
	"fa":       "Persian",
	"pl":       "Polish",
	"pt":       "Portuguese",
	"pa":       "Punjabi",
	"ro":       "Romanian",
	"ru":       "Russian",
	"sm":       "Samoan",
	"gd":       "Scots Gaelic",
	"sr":       "Serbian",
	"st":       "Sesotho",
	"sn":       "Shona",
	"sd":       "Sindhi",
	"si":       "Sinhala (Sinhalese)",
	"sk":       "Slovak",
	"sl":       "Slovenian",
	"so":       "Somali",
	"es":       "Spanish",
	"su":       "Sundanese",
	"sw":       "Swahili",
	"sv":       "Swedish",
	"tg":       "Tajik",
	"ta":       "Tamil",
	"te":       "Telugu",
	"th":       "Thai",
	"tr":       "Turkish",
	"uk":       "Ukrainian",
	"ur":       "Urdu",
	"ug":       "Uyghur",
	"uz":       "Uzbek",
	"vi":       "Vietnamese",
	"cy":       "Welsh",
	"xh":       "Xhosa",
	"yi":       "Yiddish",
	"yo":       "Yoruba",
	"zu":       "Zulu",
}

var byFold map[string]string

func init() {
	byFold = make(map[string]string, len(Names)*2)
	for code, name := range Names {
		byFold[strings.ToLower(code)] = name
		byFold[strings.ToLower(name)] = name
	}
}

// Resolve normalises user input into a language name. Known codes
// ("fr", "zh-Hant") and case-insensitive names ("french") map to the
// canonical name; anything else is returned trimmed, so free-form
// languages such as "Old Norse" still work. ok reports whether the
// input was recognised.
func Resolve(input string) (name string, ok bool) {
	needle := strings.TrimSpace(input)
	if needle == "" {
		return "", false
	}
	if known, found := byFold[strings.ToLower(needle)]; found {
		return known, true
	}
	return needle, false
}

// Entry is a code/name pair for listing.
type Entry struct {
	Code string
	Name string
}

// List returns the known languages sorted by name and then code.
func List() []Entry {
	entries := make([]Entry, 0, len(Names))
	for code, name := range Names {
		entries = append(entries, Entry{Code: code, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Code < entries[j].Code
	})
	return entries
}
