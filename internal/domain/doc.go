// Package domain models records from the NOAA storm events database and the
// normalization rules applied to them.
//
// # Data Source
//
// Records originate from the National Climatic Data Center storm events
// bulk CSV (1950 onwards), roughly 900k rows. The loader package owns
// retrieval and parsing; this package only sees structured records.
//
// # Event Type Normalization
//
// The EVTYPE column is free text entered by hand over several decades:
// close to a thousand distinct spellings describe a much smaller set of
// phenomena ("TSTM WIND", "THUNDERSTORM WINDS", "Tstm Wind ", ...).
// [CanonicalCategory] collapses them with an ordered table of substring
// rules, first match wins:
//
//	"TSTM WIND"        → "STORM"
//	"COASTAL FLOODING" → "FLOOD"
//	"FREEZING DRIZZLE" → "COLD"
//
// Labels matching no rule pass through trimmed and upper-cased, so
// county names and other noise rows ("APACHE COUNTY") survive as their
// own categories rather than erroring.
//
// Rule order is load-bearing. Patterns are not mutually exclusive (a
// label can contain both "FLOOD" and "WIND") and the table commits to
// the first match, so reordering rules changes category assignments.
//
// # Damage Magnitude Encoding
//
// Property and crop damage are stored as a decimal amount plus a
// one-character exponent suffix:
//
//	"K" → thousands, "M" → millions, "B" → billions, "H" → hundreds
//	digits "1".."8" → powers of ten
//	"-", "?", "+", "0", empty, or anything else → multiplier 1
//
// [MagnitudeMultiplier] decodes the suffix with the same ordered
// substring-rule scheme. The containment check (rather than exact match)
// means a compound suffix resolves against whichever rule appears first
// in the table; the historical numbers depend on that behavior, so it is
// preserved rather than tightened.
package domain
