package geography

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// apostropheVariants covers the marks that transliterated Arabic names
// use interchangeably for hamza/ayn.
const apostropheVariants = "'`‘’ʻʼʾʿ"

// aliasTable maps folded name variants to canonical region identifiers.
// Keys are in folded form (lowercase, no diacritics, no apostrophes,
// no "governorate" suffix); values are the canonical identifiers used
// across the system. Every canonical identifier appears as the value of
// its own folded form, which is what makes Normalize idempotent.
var aliasTable = map[string]string{
	// Sana'a city and governorate variants collapse to one id; the
	// upstream price data does not distinguish them.
	"sanaa":            "sana'a",
	"sana":             "sana'a",
	"sanaa city":       "sana'a",
	"amanat al asimah": "sana'a",
	"amanat alasimah":  "sana'a",

	"taizz": "ta'izz",
	"taiz":  "ta'izz",

	"al dhalee": "al dhale'e",
	"al dhale":  "al dhale'e",
	"ad dali":   "al dhale'e",
	"ad dalih":  "al dhale'e",
	"dhale":     "al dhale'e",

	"al hudaydah":  "al hudaydah",
	"hudaydah":     "al hudaydah",
	"hodeidah":     "al hudaydah",
	"al hodeidah":  "al hudaydah",
	"al hodeida":   "al hudaydah",

	"hadramaut":  "hadramaut",
	"hadhramaut": "hadramaut",
	"hadramawt":  "hadramaut",
	"hadhramawt": "hadramaut",

	"lahj":  "lahj",
	"lahij": "lahj",
	"lahej": "lahj",

	"marib":  "ma'rib",
	"maarib": "ma'rib",
	"mareb":  "ma'rib",

	"saada":  "sa'ada",
	"sadah":  "sa'ada",
	"saadah": "sa'ada",

	"shabwah": "shabwah",
	"shabwa":  "shabwah",

	"al maharah": "al maharah",
	"al mahrah":  "al maharah",
	"al mahra":   "al maharah",
	"mahra":      "al maharah",

	"al bayda":  "al bayda",
	"al baidha": "al bayda",
	"al beida":  "al bayda",

	"al mahwit":  "al mahwit",
	"al mahweet": "al mahwit",

	"socotra": "socotra",
	"soqatra": "socotra",
	"suqutra": "socotra",
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a raw region name into its canonical identifier.
//
// The fold lowercases, strips diacritics and apostrophe variants
// (including possessive "'s"), removes a trailing "governorate", and
// collapses whitespace. The folded form is then resolved through the
// alias table; names without a table entry pass through folded but
// otherwise unchanged. Normalize is a pure function and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	folded := fold(raw)
	if canonical, ok := aliasTable[folded]; ok {
		return canonical
	}
	return folded
}

func fold(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	if stripped, _, err := transform.String(diacriticStripper, s); err == nil {
		s = stripped
	}

	s = strings.ReplaceAll(s, "'s ", " ")
	if strings.HasSuffix(s, "'s") {
		s = strings.TrimSuffix(s, "'s")
	}
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(apostropheVariants, r) {
			return -1
		}
		return r
	}, s)

	s = strings.TrimSuffix(strings.TrimSpace(s), " governorate")

	return strings.Join(strings.Fields(s), " ")
}
