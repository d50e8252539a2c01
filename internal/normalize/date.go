package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar-unvalidated civil date decoded from the 8-digit integer
// encoding used by the sales extract (e.g. 20240115). The upstream contract
// only checks that the value is positive and exactly 8 digits long, so day 30
// of February survives the pass; time.Time would silently normalize it away.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ParseDateKey decodes an 8-digit integer date. It returns nil for anything
// that is empty, non-numeric, non-positive, or not exactly 8 digits.
func ParseDateKey(raw string) *Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil
	}
	if n < 10000000 || n > 99999999 {
		return nil
	}
	return &Date{
		Year:  n / 10000,
		Month: (n / 100) % 100,
		Day:   n % 100,
	}
}

// Int returns the original 8-digit encoding
func (d Date) Int() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// Before reports whether d is earlier than other. The integer encoding
// orders correctly without calendar interpretation.
func (d Date) Before(other Date) bool {
	return d.Int() < other.Int()
}

// String formats the date as ISO-8601 (YYYY-MM-DD)
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// parseDay parses a plain date or timestamp string into a day-granularity
// time. Returns nil when the value is empty or unparseable.
func parseDay(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}
	return nil
}
