package cnab

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeAmount(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"000000000012345", "123.45"},
		{"000000000000000", "0"},
		{"000000000000001", "0.01"},
		{"999999999999999", "9999999999999.99"},
	}

	for _, tt := range tests {
		got, err := DecodeAmount(tt.raw, 2)
		if err != nil {
			t.Fatalf("DecodeAmount(%q) error: %v", tt.raw, err)
		}
		if !got.Equal(decimal.RequireFromString(tt.expected)) {
			t.Errorf("DecodeAmount(%q) = %s, want %s", tt.raw, got, tt.expected)
		}
	}
}

func TestDecodeAmountRejectsNonDigits(t *testing.T) {
	for _, raw := range []string{"0000000001234X", "   000000000123", "1.234", ""} {
		_, err := DecodeAmount(raw, 2)
		if err == nil {
			t.Errorf("DecodeAmount(%q) expected error, got nil", raw)
			continue
		}

		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("DecodeAmount(%q) error is %T, want *FormatError", raw, err)
		}
	}
}

func TestDecodeDate(t *testing.T) {
	date, err := DecodeDate("25122024")
	if err != nil {
		t.Fatalf("DecodeDate error: %v", err)
	}
	if date == nil {
		t.Fatal("DecodeDate returned nil for a real date")
	}
	if date.Year() != 2024 || date.Month() != 12 || date.Day() != 25 {
		t.Errorf("DecodeDate = %v, want 2024-12-25", date)
	}
}

func TestDecodeDateSentinel(t *testing.T) {
	for _, raw := range []string{"00000000", "        ", ""} {
		date, err := DecodeDate(raw)
		if err != nil {
			t.Errorf("DecodeDate(%q) error: %v", raw, err)
		}
		if date != nil {
			t.Errorf("DecodeDate(%q) = %v, want nil", raw, date)
		}
	}
}

func TestDecodeDateInvalid(t *testing.T) {
	_, err := DecodeDate("99999999")
	if err == nil {
		t.Fatal("expected error for impossible date")
	}

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error is %T, want *FormatError", err)
	}
}

func TestDecodeTime(t *testing.T) {
	clock, err := DecodeTime("143025")
	if err != nil {
		t.Fatalf("DecodeTime error: %v", err)
	}
	if clock.Hour() != 14 || clock.Minute() != 30 || clock.Second() != 25 {
		t.Errorf("DecodeTime = %v, want 14:30:25", clock)
	}

	if _, err := DecodeTime("256161"); err == nil {
		t.Error("expected error for impossible time")
	}
}

func TestEncodeField(t *testing.T) {
	tests := []struct {
		value    string
		width    int
		fill     byte
		leftPad  bool
		expected string
	}{
		{"123", 6, '0', true, "000123"},
		{"ACME", 8, ' ', false, "ACME    "},
		{"TRUNCATED", 4, ' ', false, "TRUN"},
		{"", 3, '0', true, "000"},
		{"ABC", 3, ' ', false, "ABC"},
	}

	for _, tt := range tests {
		got := EncodeField(tt.value, tt.width, tt.fill, tt.leftPad)
		if got != tt.expected {
			t.Errorf("EncodeField(%q, %d) = %q, want %q", tt.value, tt.width, got, tt.expected)
		}
		if len(got) != tt.width {
			t.Errorf("EncodeField(%q, %d) produced %d characters", tt.value, tt.width, len(got))
		}
	}
}

func TestExtractTrimmed(t *testing.T) {
	line := "ABC  NAME HERE      XYZ"
	if got := ExtractTrimmed(line, 3, 20); got != "NAME HERE" {
		t.Errorf("ExtractTrimmed = %q, want %q", got, "NAME HERE")
	}
}
