package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// Column names in the NOAA storm events CSV. The file carries 37 columns;
// only these eight feed the report.
const (
	colEventType    = "EVTYPE"
	colBeginDate    = "BGN_DATE"
	colFatalities   = "FATALITIES"
	colInjuries     = "INJURIES"
	colPropDamage   = "PROPDMG"
	colPropExponent = "PROPDMGEXP"
	colCropDamage   = "CROPDMG"
	colCropExponent = "CROPDMGEXP"
)

// beginDateLayout matches the dataset's BGN_DATE values, e.g.
// "4/18/1950 0:00:00".
const beginDateLayout = "1/2/2006 15:04:05"

// decodeCSV parses the storm events CSV into raw records. Columns are
// located by header name so column order and extra columns don't matter.
// Rows shorter than the rightmost needed column are skipped and counted;
// unparseable numeric fields coerce to zero and unparseable dates to the
// zero time, per the loader's contract with the domain package.
func decodeCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(maybeDecompress(r))
	cr.FieldsPerRecord = -1 // ragged rows are handled below

	header, err := cr.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}

	cols, maxIndex, err := columnIndex(header)
	if err != nil {
		return Dataset{}, err
	}

	var ds Dataset
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("read row: %w", err)
		}
		if len(row) <= maxIndex {
			ds.SkippedRows++
			continue
		}

		ds.Records = append(ds.Records, domain.RawRecord{
			EventType:         row[cols[colEventType]],
			BeginDate:         parseDateOrZero(row[cols[colBeginDate]]),
			Fatalities:        parseCountOrZero(row[cols[colFatalities]]),
			Injuries:          parseCountOrZero(row[cols[colInjuries]]),
			PropertyDamage:    parseFloatOrZero(row[cols[colPropDamage]]),
			PropertyMagnitude: row[cols[colPropExponent]],
			CropDamage:        parseFloatOrZero(row[cols[colCropDamage]]),
			CropMagnitude:     row[cols[colCropExponent]],
		})
	}

	return ds, nil
}

// columnIndex maps the needed column names to their positions in the
// header. Header matching is case-insensitive on trimmed names.
func columnIndex(header []string) (map[string]int, int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	needed := []string{
		colEventType, colBeginDate,
		colFatalities, colInjuries,
		colPropDamage, colPropExponent,
		colCropDamage, colCropExponent,
	}

	cols := make(map[string]int, len(needed))
	maxIndex := 0
	for _, name := range needed {
		i, ok := positions[name]
		if !ok {
			return nil, 0, fmt.Errorf("missing column %s", name)
		}
		cols[name] = i
		if i > maxIndex {
			maxIndex = i
		}
	}
	return cols, maxIndex, nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseCountOrZero parses a count column. The dataset writes counts as
// decimals ("15", occasionally "0.00"), so parse as float and truncate.
func parseCountOrZero(s string) int {
	return int(parseFloatOrZero(s))
}

// parseDateOrZero parses a BGN_DATE value, returning the zero time when
// the value doesn't match the dataset layout. Year extraction downstream
// treats zero times as "year unknown".
func parseDateOrZero(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(beginDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
