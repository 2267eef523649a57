package core

import (
	"regexp"
	"strings"
)

// Brand and machine-type labels. The catch-all buckets are display labels,
// not sentinels: "Outras Marcas" groups HVAC items whose brand is unknown,
// "Outros" marks items that are not HVAC equipment at all and is filtered
// out of the type breakdown.
const (
	BrandOther     = "Outras Marcas"
	TypeHighWall   = "High-Wall"
	TypeCassete    = "Cassete"
	TypeTeto       = "Teto"
	TypeMultisplit = "Multisplit"
	TypeOther      = "Outros"

	PaymentBoleto = "Boleto"
	PaymentPix    = "PIX"
	PaymentCredit = "Cartão de Crédito"
	PaymentDebit  = "Débito"
)

// hvacKeywords identify air-conditioning equipment in free-text item names.
// "ar-condicionado" is covered by "condicionado".
var hvacKeywords = []string{
	"split",
	"condicionado",
	"cassete",
	"evaporadora",
	"condensadora",
	"hi-wall",
	"hiwall",
	"climatizador",
}

var (
	btuUnitPattern     = regexp.MustCompile(`\b(btus?|btu/h)\b`)
	btuCapacityPattern = regexp.MustCompile(`\b\d+k?\s*(btus?|btu/h)?\b`)
)

// IsHVACEquipment reports whether an item name describes an
// air-conditioning unit: any of the domain keywords, or a BTU capacity
// figure ("9000 BTUs", "12k").
func IsHVACEquipment(itemName string) bool {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return false
	}
	for _, kw := range hvacKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return btuUnitPattern.MatchString(name) || btuCapacityPattern.MatchString(name)
}

// knownBrands is scanned in priority order; the first brand contained in
// the item name wins.
var knownBrands = []string{
	"Gree",
	"Hisense",
	"Philco",
	"Electrolux",
	"Midea",
	"Springer",
	"Carrier",
	"Samsung",
	"LG",
	"Elgin",
}

// ClassifyBrand infers the product brand from a free-text item name. The
// second return value is false for records that are not HVAC equipment;
// those are excluded from brand aggregation entirely. HVAC records that
// match no known brand fall into the BrandOther bucket.
func ClassifyBrand(itemName string) (string, bool) {
	if !IsHVACEquipment(itemName) {
		return "", false
	}
	name := strings.ToLower(strings.TrimSpace(itemName))
	for _, brand := range knownBrands {
		needle := strings.ToLower(brand)
		if !strings.Contains(name, needle) {
			continue
		}
		// "Elgin" contains "lg"; an Elgin unit must not be reported as LG.
		if needle == "lg" && strings.Contains(name, "elgin") {
			continue
		}
		return brand, true
	}
	return BrandOther, true
}

// machineTypeRules assign exactly one type label per item name. Ordered,
// first match wins, so the precedence between overlapping keywords
// (cassete vs teto, multi vs plain split) stays auditable in one place.
var machineTypeRules = []struct {
	label string
	match func(name string) bool
}{
	{TypeHighWall, matchHighWall},
	{TypeCassete, matchCassete},
	{TypeTeto, matchTeto},
	{TypeMultisplit, matchMultisplit},
	{TypeHighWall, matchPlainSplit},
}

var (
	highWallPattern = regexp.MustCompile(`\bhigh[\s-]?wall\b`)
	cassetePattern  = regexp.MustCompile(`\bcassete\b`)
	k7Pattern       = regexp.MustCompile(`\bk7\b`)
	pisoTetoPattern = regexp.MustCompile(`\bpiso[\s-]?teto\b`)
)

func matchHighWall(name string) bool {
	if strings.Contains(name, "hi-wall") || strings.Contains(name, "hi wall") || strings.Contains(name, "hiwall") {
		return true
	}
	if strings.Contains(name, "split") && (strings.Contains(name, "parede") || strings.Contains(name, "wall")) {
		return true
	}
	return highWallPattern.MatchString(name)
}

func matchCassete(name string) bool {
	if cassetePattern.MatchString(name) || k7Pattern.MatchString(name) || strings.Contains(name, "cassette") {
		return true
	}
	return strings.Contains(name, "teto") && strings.Contains(name, "embutir")
}

func matchTeto(name string) bool {
	if strings.Contains(name, "teto") && !strings.Contains(name, "cassete") && !strings.Contains(name, "embutir") {
		return true
	}
	return strings.Contains(name, "ceiling") || pisoTetoPattern.MatchString(name)
}

func matchMultisplit(name string) bool {
	if strings.Contains(name, "multisplit") || strings.Contains(name, "multi-split") || strings.Contains(name, "multi split") {
		return true
	}
	return strings.Contains(name, "multi") &&
		(strings.Contains(name, "split") || strings.Contains(name, "evaporadora") || strings.Contains(name, "condensadora"))
}

func matchPlainSplit(name string) bool {
	return strings.Contains(name, "split") &&
		!strings.Contains(name, "multi") &&
		!strings.Contains(name, "cassete") &&
		!strings.Contains(name, "teto")
}

// ClassifyMachineType assigns one machine-type label to an item name.
// Non-HVAC records map to TypeOther. HVAC records that match no rule
// default to TypeHighWall, since most unlabeled split units are wall
// mounted.
func ClassifyMachineType(itemName string) string {
	if !IsHVACEquipment(itemName) {
		return TypeOther
	}
	name := strings.ToLower(strings.TrimSpace(itemName))
	for _, rule := range machineTypeRules {
		if rule.match(name) {
			return rule.label
		}
	}
	return TypeHighWall
}

// ClassifyPayment folds the free-text payment detail into one of the
// canonical payment methods. Card networks count as credit. Text matching
// none of the rules is kept verbatim.
func ClassifyPayment(detail string) string {
	lower := strings.ToLower(strings.TrimSpace(detail))
	switch {
	case strings.Contains(lower, "boleto"):
		return PaymentBoleto
	case strings.Contains(lower, "pix"):
		return PaymentPix
	case containsAny(lower, "visa", "mastercard", "elo", "amex", "crédito", "credito"):
		return PaymentCredit
	case strings.Contains(lower, "débito") || strings.Contains(lower, "debito"):
		return PaymentDebit
	default:
		return detail
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
