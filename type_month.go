package costbasis

import (
	"fmt"
	"time"
)

// MonthFormat is the layout of a Month string.
const MonthFormat = "2006-01"

// Month is a calendar month.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{t.Year(), t.Month()}
}

// MonthOf returns the month containing t, in UTC.
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{t.Year(), t.Month()}
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse(MonthFormat, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", s, MonthFormat, err)
	}
	return MonthOf(t), nil
}

func (m Month) Year() int           { return m.y }
func (m Month) Month() time.Month   { return m.m }
func (m Month) Add(n int) Month     { return NewMonth(m.y, m.m+time.Month(n)) }
func (m Month) Start() time.Time    { return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC) }
func (m Month) End() time.Time      { return m.Add(1).Start() } // exclusive
func (m Month) Before(n Month) bool { return m.Start().Before(n.Start()) }
func (m Month) After(n Month) bool  { return m.Start().After(n.Start()) }
func (m Month) String() string      { return m.Start().Format(MonthFormat) }
