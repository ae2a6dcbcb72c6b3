package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// TaxYear returns the UK tax year starting on the 6th of April of year and
// ending on the 5th of April of the following year.
func TaxYear(year int) Range {
	return Range{From: New(year, time.April, 6), To: New(year+1, time.April, 5)}
}

// TaxYearOf returns the UK tax year that contains d.
func TaxYearOf(d Date) Range {
	y := d.Year()
	if d.Before(New(y, time.April, 6)) {
		y--
	}
	return TaxYear(y)
}

// ParseTaxYear parses "2023", "2023-24" or "2023/24" into the tax year
// starting in 2023.
func ParseTaxYear(s string) (Range, error) {
	s = strings.TrimSpace(s)
	first, second, split := strings.Cut(strings.ReplaceAll(s, "/", "-"), "-")
	y, err := strconv.Atoi(first)
	if err != nil || len(first) != 4 {
		return Range{}, fmt.Errorf("invalid tax year %q want format \"2023-24\"", s)
	}
	if split {
		n, err := strconv.Atoi(second)
		if err != nil || (len(second) == 2 && n != (y+1)%100) || (len(second) == 4 && n != y+1) || (len(second) != 2 && len(second) != 4) {
			return Range{}, fmt.Errorf("invalid tax year %q: %q does not follow %d", s, second, y)
		}
	}
	return TaxYear(y), nil
}

// IsTaxYear reports whether r is exactly one UK tax year.
func (r Range) IsTaxYear() bool { return r == TaxYearOf(r.From) }

// Identifier compute a short identifier for the Range: "2023-24" for a tax
// year, "from_to" otherwise.
func (r Range) Identifier() string {
	if r.IsTaxYear() {
		return fmt.Sprintf("%d-%02d", r.From.Year(), (r.From.Year()+1)%100)
	}
	return fmt.Sprintf("%s_%s", r.From, r.To)
}

// String returns a human readable form of the range.
func (r Range) String() string {
	if r.IsTaxYear() {
		return fmt.Sprintf("tax year %s (%s to %s)", r.Identifier(), r.From, r.To)
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}
