package util

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "display format DD-MM-YYYY",
			input: "15-01-2010",
			want:  "2010-01-15",
		},
		{
			name:  "storage format YYYY-MM-DD",
			input: "2010-01-15",
			want:  "2010-01-15",
		},
		{
			name:  "admission date from sample row",
			input: "01-06-2024",
			want:  "2024-06-01",
		},
		{
			name:  "leading and trailing spaces",
			input: " 15-01-2010 ",
			want:  "2010-01-15",
		},
		{
			name:  "quoted CSV cell",
			input: `"15-01-2010"`,
			want:  "2010-01-15",
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "slash separators rejected",
			input:   "15/01/2010",
			wantErr: true,
		},
		{
			name:    "garbage rejected",
			input:   "not-a-date",
			wantErr: true,
		},
		{
			name:    "impossible day rejected",
			input:   "32-01-2010",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlexibleDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFlexibleDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseFlexibleDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
			if got.Location() != time.Local {
				t.Errorf("ParseFlexibleDate(%q) location = %v, want %v", tt.input, got.Location(), time.Local)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("ParseFlexibleDate(%q) should return start of day", tt.input)
			}
		})
	}
}

func TestDateRoundTrip(t *testing.T) {
	// toStorage(toDisplay(d)) == d for both accepted input formats.
	for _, input := range []string{"15-01-2010", "2010-01-15"} {
		parsed, err := ParseFlexibleDate(input)
		if err != nil {
			t.Fatalf("ParseFlexibleDate(%q) failed: %v", input, err)
		}
		display := ToDisplayDate(parsed)
		stored, err := ToStorageDate(display)
		if err != nil {
			t.Fatalf("ToStorageDate(%q) failed: %v", display, err)
		}
		if stored != parsed.Format("2006-01-02") {
			t.Errorf("round trip of %q = %s, want %s", input, stored, parsed.Format("2006-01-02"))
		}
	}
}

func TestToStorageDate(t *testing.T) {
	got, err := ToStorageDate("01-06-2024")
	if err != nil {
		t.Fatalf("ToStorageDate() failed: %v", err)
	}
	if got != "2024-06-01" {
		t.Errorf("ToStorageDate() = %s, want 2024-06-01", got)
	}

	if _, err := ToStorageDate("2024.06.01"); err == nil {
		t.Error("ToStorageDate() should reject dot separators")
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{5000, "₹5000.00"},
		{1234.5, "₹1234.50"},
		{0, "₹0.00"},
		{99.999, "₹100.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}
