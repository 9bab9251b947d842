package idealista

import (
	"strconv"
	"strings"
	"unicode"
)

// digitsOnly drops every character that is not an ASCII digit.
func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// parseDigits keeps the digits of raw and parses them as a number.
// Examples:
//
//	"1.250.000 €" → 1250000
//	"Consultar"  → nil
func parseDigits(raw string) *float64 {
	d := digitsOnly(raw)
	if d == "" {
		return nil
	}
	v, err := strconv.ParseFloat(d, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseArea parses the digits that appear before the area marker, e.g.
// "85 m²" with marker "m" → 85. The first marker that follows a number is
// used, so the "m" inside "dormitorios" is ignored. Text without such a
// marker is cut at the first marker, or parsed whole when there is none.
func parseArea(raw, marker string) *float64 {
	if marker != "" {
		if i := areaMarkerIndex(raw, marker); i >= 0 {
			raw = raw[:i]
		} else if i := strings.Index(raw, marker); i >= 0 {
			raw = raw[:i]
		}
	}
	return parseDigits(raw)
}

// hasAreaBeforeMarker reports whether raw carries a number directly ahead of
// marker ("90 m²", "120m2"), as opposed to a word containing it.
func hasAreaBeforeMarker(raw, marker string) bool {
	return areaMarkerIndex(raw, marker) >= 0
}

// areaMarkerIndex returns the index of the first marker whose preceding text,
// ignoring trailing whitespace, ends in a digit, or -1.
func areaMarkerIndex(raw, marker string) int {
	if marker == "" {
		return -1
	}
	for off := 0; off < len(raw); {
		i := strings.Index(raw[off:], marker)
		if i < 0 {
			return -1
		}
		i += off
		pre := strings.TrimRightFunc(raw[:i], unicode.IsSpace)
		if pre != "" && pre[len(pre)-1] >= '0' && pre[len(pre)-1] <= '9' {
			return i
		}
		off = i + len(marker)
	}
	return -1
}
