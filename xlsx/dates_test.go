package xlsx

import "testing"

func TestClassifyFormat(t *testing.T) {
	tests := []struct {
		id   int
		code string
		want dateKind
	}{
		{0, "", notDate},
		{2, "", notDate},
		{14, "", dateOnly},
		{22, "", dateTime},
		{20, "", timeOnly},
		{46, "", timeOnly},
		{164, "yyyy-mm-dd", dateOnly},
		{164, "dd/mm/yyyy hh:mm", dateTime},
		{164, "mm:ss", timeOnly},
		{164, "mmm", dateOnly},
		{164, `"day" 0.00`, notDate},
		{164, "[Red]0.00;[Blue]-0.00", notDate},
		{164, "General", notDate},
		{164, `0.00\d`, notDate},
		{164, "[$-409]d-mmm-yy", dateOnly},
	}

	for _, tt := range tests {
		if got := classifyFormat(tt.id, tt.code); got != tt.want {
			t.Errorf("classifyFormat(%d, %q) = %v, want %v", tt.id, tt.code, got, tt.want)
		}
	}
}

func TestFormatSerial(t *testing.T) {
	tests := []struct {
		serial   float64
		date1904 bool
		kind     dateKind
		want     string
	}{
		{45306, false, dateOnly, "2024-01-15"},
		{45306.25, false, dateOnly, "2024-01-15T06:00:00"},
		{45306.5, false, dateTime, "2024-01-15T12:00:00"},
		{0.5, false, timeOnly, "12:00:00"},
		{1, false, dateOnly, "1900-01-01"},
		{61, false, dateOnly, "1900-03-01"},
		{0, true, dateOnly, "1904-01-01"},
		{43845, true, dateOnly, "2024-01-16"},
	}

	for _, tt := range tests {
		if got := formatSerial(tt.serial, tt.date1904, tt.kind); got != tt.want {
			t.Errorf("formatSerial(%v, %v, %v) = %q, want %q", tt.serial, tt.date1904, tt.kind, got, tt.want)
		}
	}
}
