package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2024, time.March, 3, 23, 59, 0, 0, time.UTC)
	if got, want := FromTime(tm), New(2024, time.March, 3); got != want {
		t.Errorf("FromTime(%v) = %v, want %v", tm, got, want)
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		a, b Date
		want int
	}{
		{New(2024, 1, 1), New(2024, 1, 1), 0},
		{New(2024, 1, 31), New(2024, 1, 1), 30},
		{New(2024, 3, 1), New(2024, 2, 28), 2}, // leap year
		{New(2024, 1, 1), New(2024, 1, 31), -30},
		{New(2024, 3, 31), New(2024, 3, 30), 1}, // across a DST change in Europe
	}
	for _, tc := range testCases {
		if got := tc.a.Sub(tc.b); got != tc.want {
			t.Errorf("%v.Sub(%v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if want := New(2025, time.July, 1); d != want {
		t.Errorf("Parse() = %v, want %v", d, want)
	}
	if _, err := Parse("01/07/2025"); err == nil {
		t.Error("Parse() expected an error for an unsupported format")
	}
}
