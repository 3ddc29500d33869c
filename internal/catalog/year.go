package catalog

import (
	"strconv"
	"strings"

	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
)

// ParseYear reads a year from the first four characters of a provider date
// string such as "2024-05-01". Short or non-numeric input yields nil.
func ParseYear(date string) *int {
	if len(date) < 4 {
		return nil
	}
	prefix := date[:4]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] < '0' || prefix[i] > '9' {
			return nil
		}
	}
	year, err := strconv.Atoi(prefix)
	if err != nil {
		return nil
	}
	return intPtr(year)
}

// YearFilter restricts a query to one year or an inclusive range of years.
// The zero value means no filter.
type YearFilter struct {
	Start int
	End   int
}

// IsZero reports whether the filter is empty.
func (f YearFilter) IsZero() bool {
	return f.Start == 0 && f.End == 0
}

// IsRange reports whether the filter spans more than a single exact year.
func (f YearFilter) IsRange() bool {
	return !f.IsZero() && f.Start != f.End
}

// String renders the filter the way clients send it: "2020" or "2016-2020".
func (f YearFilter) String() string {
	switch {
	case f.IsZero():
		return ""
	case f.IsRange():
		return strconv.Itoa(f.Start) + "-" + strconv.Itoa(f.End)
	default:
		return strconv.Itoa(f.Start)
	}
}

// ParseYearFilter validates a year parameter: "", "YYYY" or "YYYY-YYYY".
// Ranges must have exactly two four-digit parts with start <= end; anything
// else, including "2020-", is a ValidationError.
func ParseYearFilter(raw string) (YearFilter, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return YearFilter{}, nil
	}

	if !strings.Contains(raw, "-") {
		year, ok := fourDigitYear(raw)
		if !ok {
			return YearFilter{}, apperrors.NewValidationError("year", "year must be a four-digit number or a range like 2016-2020")
		}
		return YearFilter{Start: year, End: year}, nil
	}

	parts := strings.Split(raw, "-")
	if len(parts) != 2 {
		return YearFilter{}, apperrors.NewValidationError("year", "year must be a single year (2020) or a range (2016-2020)")
	}
	start, okStart := fourDigitYear(parts[0])
	end, okEnd := fourDigitYear(parts[1])
	if !okStart || !okEnd {
		return YearFilter{}, apperrors.NewValidationError("year", "invalid year range")
	}
	if start > end {
		return YearFilter{}, apperrors.NewValidationError("year", "range start is after range end")
	}
	return YearFilter{Start: start, End: end}, nil
}

func fourDigitYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, false
	}
	year := ParseYear(s)
	if year == nil {
		return 0, false
	}
	return *year, true
}
