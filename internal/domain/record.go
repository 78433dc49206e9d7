package domain

import "time"

// RawRecord is one observed weather event as parsed from the NOAA storm
// events CSV. Fields mirror the source columns; the loader owns coercion
// of the numeric and date columns.
type RawRecord struct {
	EventType  string    // EVTYPE, free text with no fixed vocabulary
	BeginDate  time.Time // BGN_DATE, zero when unparseable
	Fatalities int
	Injuries   int

	// Damage figures come as a decimal amount plus a one-character
	// order-of-magnitude suffix (K = thousands, M = millions, ...).
	PropertyDamage    float64
	PropertyMagnitude string
	CropDamage        float64
	CropMagnitude     string
}

// ImpactRecord is a RawRecord after normalization: canonical category,
// magnitude-decoded damage figures in dollars, and the event year
// (0 when the begin date is unknown).
type ImpactRecord struct {
	Category   string
	Year       int
	Fatalities int
	Injuries   int
	Mapped     bool // false when the category is a pass-through label

	PropertyDamage float64
	CropDamage     float64
}

// HealthImpact is the combined human toll of the record.
func (r ImpactRecord) HealthImpact() int {
	return r.Fatalities + r.Injuries
}

// EconomicDamage is the combined property and crop damage in dollars.
func (r ImpactRecord) EconomicDamage() float64 {
	return r.PropertyDamage + r.CropDamage
}

// Annotate normalizes a raw record into an ImpactRecord: the event type is
// collapsed to its canonical category, both damage figures are scaled by
// their decoded magnitude suffix, and the year is extracted from the begin
// date. Pure; the input is not modified.
func Annotate(raw RawRecord) ImpactRecord {
	category, mapped := CanonicalCategory(raw.EventType)

	year := 0
	if !raw.BeginDate.IsZero() {
		year = raw.BeginDate.Year()
	}

	return ImpactRecord{
		Category:   category,
		Year:       year,
		Fatalities: raw.Fatalities,
		Injuries:   raw.Injuries,
		Mapped:     mapped,

		PropertyDamage: raw.PropertyDamage * MagnitudeMultiplier(raw.PropertyMagnitude),
		CropDamage:     raw.CropDamage * MagnitudeMultiplier(raw.CropMagnitude),
	}
}
