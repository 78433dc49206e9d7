package domain

import "strings"

// categoryRule maps a substring pattern to a canonical category. Rules are
// evaluated in order against the trimmed, upper-cased label and the first
// pattern contained in the label wins, so the order below is part of the
// contract: several patterns can occur in the same label (e.g.
// "FLOOD/STRONG WIND") and reordering would change the assignment.
type categoryRule struct {
	pattern  string
	category string
}

// categoryRules collapses the several thousand raw EVTYPE variants in the
// storm events dataset into a small canonical set. Patterns cover the common
// misspellings that appear in the source data (TORNDAO, LIGNTNING, WND).
var categoryRules = []categoryRule{
	{"LIGHTNING", "LIGHTNING"},
	{"LIGNTNING", "LIGHTNING"},
	{"LIGHTING", "LIGHTNING"},
	{"TSTM", "STORM"},
	{"THUNDERSTORM", "STORM"},
	{"MICROBURST", "WIND"},
	{"DOWNBURST", "WIND"},
	{"TORNADO", "TORNADO"},
	{"TORNDAO", "TORNADO"},
	{"SPOUT", "TORNADO"},
	{"FUNNEL", "TORNADO"},
	{"TYPHOON", "TORNADO"},
	{"HURRICANE", "HURRICANE"},
	{"TROPICAL STORM", "TROPICAL STORM"},
	{"SURGE", "SURGE"},
	{"TSUNAMI", "TSUNAMI"},
	{"RIP CURRENT", "RIP CURRENT"},
	{"SURF", "SURF"},
	{"HEAVY SEAS", "SEAS"},
	{"ROUGH SEAS", "SEAS"},
	{"HIGH SEAS", "SEAS"},
	{"MARINE", "MARINE"},
	{"FLOOD", "FLOOD"},
	{"FLD", "FLOOD"},
	{"URBAN", "FLOOD"},
	{"STREAM", "FLOOD"},
	{"HIGH WATER", "FLOOD"},
	{"HAIL", "HAIL"},
	{"SNOW", "COLD"},
	{"BLIZZARD", "COLD"},
	{"COLD", "COLD"},
	{"FREEZ", "COLD"},
	{"FROST", "COLD"},
	{"WINTER", "COLD"},
	{"WINTRY", "COLD"},
	{"HYPOTHERMIA", "COLD"},
	{"CHILL", "COLD"},
	{"ICE", "COLD"},
	{"ICY", "COLD"},
	{"GLAZE", "COLD"},
	{"SLEET", "COLD"},
	{"LOW TEMPERATURE", "COLD"},
	{"RAIN", "RAIN"},
	{"PRECIP", "RAIN"},
	{"SHOWER", "RAIN"},
	{"WET", "RAIN"},
	{"HEAT", "HEAT"},
	{"HOT", "HEAT"},
	{"WARM", "HEAT"},
	{"HYPERTHERMIA", "HEAT"},
	{"HIGH TEMPERATURE", "HEAT"},
	{"WIND", "WIND"},
	{"WND", "WIND"},
	{"GUST", "WIND"},
	{"FIRE", "FIRE"},
	{"SMOKE", "FIRE"},
	{"FOG", "FOG"},
	{"VOG", "FOG"},
	{"DUST", "DUST"},
	{"DROUGHT", "DROUGHT"},
	{"DRY", "DROUGHT"},
	{"AVALANC", "AVALANCHE"},
	{"SLIDE", "SLIDE"},
	{"LANDSLUMP", "SLIDE"},
	{"VOLCAN", "VOLCANO"},
}

// magnitudeRule maps a suffix pattern to a numeric multiplier. Like the
// category rules the check is substring containment in order, first match
// wins. That makes multi-character suffixes resolve against whichever
// single-character rule appears first ("K5" hits the "5" rule before "K").
// The looseness is deliberate; tightening it would shift long-standing
// damage totals.
type magnitudeRule struct {
	pattern    string
	multiplier float64
}

var magnitudeRules = []magnitudeRule{
	{"-", 1},
	{"?", 1},
	{"+", 1},
	{"0", 1},
	{"1", 10},
	{"2", 100},
	{"3", 1e3},
	{"4", 1e4},
	{"5", 1e5},
	{"6", 1e6},
	{"7", 1e7},
	{"8", 1e8},
	{"H", 100},
	{"K", 1e3},
	{"M", 1e6},
	{"B", 1e9},
}

// CanonicalCategory maps a raw event-type label to its canonical category.
// The label is trimmed and upper-cased, then matched against the ordered
// rule table. Unmatched labels pass through in their preprocessed form and
// report mapped=false; that is informational, never an error.
func CanonicalCategory(raw string) (category string, mapped bool) {
	label := strings.ToUpper(strings.TrimSpace(raw))
	for _, rule := range categoryRules {
		if strings.Contains(label, rule.pattern) {
			return rule.category, true
		}
	}
	return label, false
}

// NormalizeEventType is CanonicalCategory without the mapped flag.
func NormalizeEventType(raw string) string {
	category, _ := CanonicalCategory(raw)
	return category
}

// MagnitudeMultiplier decodes a damage magnitude suffix into its numeric
// multiplier. Total over all strings: empty, unknown, and malformed
// suffixes all resolve to 1.
func MagnitudeMultiplier(suffix string) float64 {
	s := strings.ToUpper(suffix)
	for _, rule := range magnitudeRules {
		if strings.Contains(s, rule.pattern) {
			return rule.multiplier
		}
	}
	return 1
}
