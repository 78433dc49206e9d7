package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		mapped bool
	}{
		{"tstm wind", "TSTM WIND", "STORM", true},
		{"thunderstorm winds", "THUNDERSTORM WINDS", "STORM", true},
		{"flash flood", "FLASH FLOOD", "FLOOD", true},
		{"coastal flooding", "COASTAL FLOODING", "FLOOD", true},
		{"lowercase", "coastal flooding", "FLOOD", true},
		{"surrounding whitespace", "  Tstm Wind ", "STORM", true},
		{"waterspout", "WATERSPOUT", "TORNADO", true},
		{"typhoon", "TYPHOON", "TORNADO", true},
		{"hurricane before typhoon pattern", "HURRICANE OPAL", "HURRICANE", true},
		{"blizzard", "GROUND BLIZZARD", "COLD", true},
		{"freezing rain resolves wintry before rain", "FREEZING RAIN", "COLD", true},
		{"extreme wind chill resolves cold before wind", "EXTREME WIND CHILL", "COLD", true},
		{"flood beats wind on compound labels", "FLOOD/STRONG WIND", "FLOOD", true},
		{"tstm beats flood on compound labels", "TSTM WIND/FLOOD", "STORM", true},
		{"misspelled tornado", "TORNDAO", "TORNADO", true},
		{"wnd abbreviation", "WND", "WIND", true},
		{"urban small stream fld", "URBAN/SML STREAM FLD", "FLOOD", true},
		{"unseasonably warm", "UNSEASONABLY WARM", "HEAT", true},
		{"dry microburst is wind", "DRY MICROBURST", "WIND", true},
		{"unmatched passes through", "APACHE COUNTY", "APACHE COUNTY", false},
		{"unmatched is trimmed and upper-cased", "  apache county ", "APACHE COUNTY", false},
		{"empty string", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, mapped := CanonicalCategory(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.mapped, mapped)
		})
	}
}

// Normalizing a label twice must give the same category as normalizing it
// once: every rule-table category is itself a fixed point of the rules.
func TestCanonicalCategory_Idempotent(t *testing.T) {
	for _, rule := range categoryRules {
		assert.Equal(t, rule.category, NormalizeEventType(rule.category),
			"category %q is not a fixed point", rule.category)
	}

	// Pass-through labels are fixed points too.
	assert.Equal(t, "APACHE COUNTY", NormalizeEventType(NormalizeEventType("  apache county ")))
}

func TestMagnitudeMultiplier(t *testing.T) {
	tests := []struct {
		suffix string
		want   float64
	}{
		{"", 1},
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
		{"h", 100},
		{"k", 1e3},
		{"m", 1e6},
		{"b", 1e9},
		{"XYZ", 1},
		{"9", 1},
	}

	for _, tt := range tests {
		t.Run("suffix "+tt.suffix, func(t *testing.T) {
			assert.Equal(t, tt.want, MagnitudeMultiplier(tt.suffix))
		})
	}
}

// Compound suffixes resolve by substring containment against the ordered
// rule table, so "K5" hits the "5" rule before "K". Historical totals
// depend on this, hence the pin.
func TestMagnitudeMultiplier_CompoundSuffix(t *testing.T) {
	assert.Equal(t, 1e5, MagnitudeMultiplier("K5"))
	assert.Equal(t, 1.0, MagnitudeMultiplier("M0"))
	assert.Equal(t, 100.0, MagnitudeMultiplier("HB"))
}
