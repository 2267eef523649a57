package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ExcludedPartner is the canonical key of the house account. Sales booked
// under it are internal transfers, not partner sales, and are excluded from
// every partner-facing view and aggregate.
const ExcludedPartner = "CONECTA"

// consonantFold maps accented consonants to their base letter. NFD
// decomposition handles precomposed vowels, but these are folded explicitly
// so the result does not depend on how the backend encoded them.
var consonantFold = strings.NewReplacer(
	"Ç", "C",
	"Ñ", "N",
)

// markStripper decomposes to NFD and removes combining marks, turning
// "AÇÃO" into "ACAO".
var markStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName maps a free-text partner name to its canonical key, used
// for grouping, deduplication, selection membership and exclusion rules.
// Partner names arrive from the backend with inconsistent casing, spacing
// and accent usage, so anything that is not a letter, digit or single
// space is folded away.
func NormalizeName(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), " ")
	s = consonantFold.Replace(s)
	if stripped, _, err := transform.String(markStripper, s); err == nil {
		s = stripped
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return r
		}
		return -1
	}, s)
	return strings.TrimSpace(s)
}

// IsExcludedPartner reports whether a raw partner name canonicalizes to the
// excluded house account.
func IsExcludedPartner(name string) bool {
	return NormalizeName(name) == ExcludedPartner
}

// PartnerOptions builds the deduplicated list of selectable partner names
// from a record collection. Duplicates are detected on the canonical key;
// the first raw spelling seen wins. The excluded house account and empty
// names are dropped, and the result is sorted ascending with Brazilian
// Portuguese collation.
func PartnerOptions(sales []Sale) []string {
	seen := make(map[string]struct{})
	options := make([]string, 0, 16)
	for _, s := range sales {
		raw := strings.TrimSpace(s.PartnerName)
		if raw == "" {
			continue
		}
		key := NormalizeName(raw)
		if key == "" || key == ExcludedPartner {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, raw)
	}
	collate.New(language.BrazilianPortuguese).SortStrings(options)
	return options
}
