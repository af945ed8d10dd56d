package healthplan

import (
	"fmt"
	"time"
)

// CalendarDate is a timezone-free year/month/day triple used for contract
// and rate effective dates. Audit timestamps use time.Time; the two are
// deliberately distinct types so a pure date can never pick up a clock or a
// zone.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// Date builds a CalendarDate.
func Date(year int, month time.Month, day int) *CalendarDate {
	return &CalendarDate{Year: year, Month: month, Day: day}
}

// Equal reports whether two possibly-nil dates are the same.
func (d *CalendarDate) Equal(other *CalendarDate) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day
}

func (d *CalendarDate) String() string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
