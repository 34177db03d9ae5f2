package cnab

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Positional primitives shared by the parser and the converter. These have
// no knowledge of CNAB semantics beyond "fields live at fixed offsets".

const (
	dateLayout = "02012006" // DDMMYYYY
	timeLayout = "150405"   // HHMMSS

	// dateSentinel is how CNAB240 says "no date applies"
	dateSentinel = "00000000"
)

// ExtractField returns line[start:end]. Offsets come from the Febraban
// layout tables; calling with offsets outside the line is a programming
// error, not a runtime condition, and panics like any bad slice would.
func ExtractField(line string, start, end int) string {
	return line[start:end]
}

// ExtractTrimmed returns the field with surrounding spaces removed
func ExtractTrimmed(line string, start, end int) string {
	return strings.TrimSpace(line[start:end])
}

// DecodeDate interprets an 8-character DDMMYYYY field. The all-zero
// sentinel and blank fields decode to nil: the date does not apply, which
// is not an error.
func DecodeDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == dateSentinel {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil, &FormatError{Field: "date", Value: raw, Reason: "expected DDMMYYYY"}
	}
	return &t, nil
}

// DecodeTime interprets a 6-character HHMMSS field. There is no sentinel:
// time fields are always present where the layout places them.
func DecodeTime(raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, &FormatError{Field: "time", Value: raw, Reason: "expected HHMMSS"}
	}
	return t, nil
}

// DecodeAmount parses a zero-padded digit string as an integer scaled by
// 10^scale (CNAB240 stores currency with two implied decimal places).
// Any non-digit character is a FormatError; nothing is silently coerced.
func DecodeAmount(raw string, scale int32) (decimal.Decimal, error) {
	for _, char := range raw {
		if char < '0' || char > '9' {
			return decimal.Zero, &FormatError{Field: "amount", Value: raw, Reason: "expected digits only"}
		}
	}
	if raw == "" {
		return decimal.Zero, &FormatError{Field: "amount", Value: raw, Reason: "empty field"}
	}

	units, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FormatError{Field: "amount", Value: raw, Reason: err.Error()}
	}
	return units.Shift(-scale), nil
}

// EncodeField renders a value into a fixed-width slot: longer values are
// truncated, shorter ones padded with fill on the left (numeric fields, fill
// "0") or on the right (text fields, fill " "). The symmetric counterpart of
// ExtractField, shared by any future encode path.
func EncodeField(value string, width int, fill byte, leftPad bool) string {
	if len(value) >= width {
		return value[:width]
	}

	padding := strings.Repeat(string(fill), width-len(value))
	if leftPad {
		return padding + value
	}
	return value + padding
}
