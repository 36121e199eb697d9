package xlsx

import (
	"math"
	"strings"
	"time"
)

// builtinDateFormats are the built-in number format ids that render dates or
// times.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// builtinTimeOnly are the built-in ids without a date part.
var builtinTimeOnly = map[int]bool{18: true, 19: true, 20: true, 21: true, 45: true, 46: true, 47: true}

// dateKind classifies a number format.
type dateKind int

const (
	notDate dateKind = iota
	dateOnly
	timeOnly
	dateTime
)

// classifyFormat reports whether a number format renders a date, a time or
// both. Custom codes are scanned for date tokens outside quoted literals
// and bracketed sections.
func classifyFormat(id int, code string) dateKind {
	if builtinDateFormats[id] {
		switch {
		case builtinTimeOnly[id]:
			return timeOnly
		case id == 22:
			return dateTime
		default:
			return dateOnly
		}
	}
	if code == "" {
		return notDate
	}

	tokens := stripLiterals(code)
	hasDate := strings.ContainsAny(tokens, "dy")
	hasTime := strings.ContainsAny(tokens, "hs")
	if !hasDate && !hasTime && strings.Contains(tokens, "m") {
		if strings.Contains(tokens, ":") {
			hasTime = true
		} else {
			hasDate = true
		}
	}
	switch {
	case hasDate && hasTime:
		return dateTime
	case hasDate:
		return dateOnly
	case hasTime:
		return timeOnly
	}
	return notDate
}

// stripLiterals lower-cases the first section of a format code and removes
// quoted strings, bracketed sections, escaped characters and the General
// keyword.
func stripLiterals(code string) string {
	var sb strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inBracket:
			if c == ']' {
				inBracket = false
			}
		case c == '"':
			inQuote = true
		case c == '[':
			inBracket = true
		case c == '\\' || c == '_' || c == '*':
			i++
		case c == ';':
			return strings.ReplaceAll(strings.ToLower(sb.String()), "general", "")
		default:
			sb.WriteByte(c)
		}
	}
	return strings.ReplaceAll(strings.ToLower(sb.String()), "general", "")
}

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// serialToTime converts a spreadsheet serial date to a time. Serials before
// 1900-03-01 are shifted by a day to undo the 1900 leap-year bug.
func serialToTime(serial float64, date1904 bool) time.Time {
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	} else if serial < 61 {
		epoch = epoch.AddDate(0, 0, 1)
	}
	days := math.Floor(serial)
	secs := math.Round((serial - days) * 86400)
	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second)
}

// formatSerial renders a serial date as ISO-8601 for the given format kind.
func formatSerial(serial float64, date1904 bool, kind dateKind) string {
	t := serialToTime(serial, date1904)
	switch kind {
	case timeOnly:
		return t.Format("15:04:05")
	case dateOnly:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
	}
	return t.Format("2006-01-02T15:04:05")
}
