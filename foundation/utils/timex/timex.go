// File: timex.go
// Title: Core Time Utilities
// Description: Date parsing and business day arithmetic for the date
//              formula functions. Dates are calendar days in UTC.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive time utilities
// - 2025-10-18 v0.2.0: Reduced to date parsing and business days

package timex

import (
	"time"

	mdwerror "github.com/substance/expression/foundation/core/error"
)

// Date layouts accepted by ParseDate, tried in order
const (
	ISO8601Date  = "2006-01-02"
	ShortDate    = "01/02/2006"
	CompactDate  = "20060102"
	EuropeanDate = "2.1.2006"
)

var dateLayouts = []string{ISO8601Date, time.RFC3339, ShortDate, CompactDate, EuropeanDate, "2006-1-2"}

// ParseDate parses a date and truncates it to midnight UTC
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOnly(t), nil
		}
	}
	return time.Time{}, mdwerror.Newf("unable to parse date %q", value).
		WithCode(mdwerror.CodeInvalidArgument).
		WithOperation("timex.ParseDate")
}

// FormatDate renders t as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(ISO8601Date)
}

// DateOnly drops the time of day
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BusinessDayConfig holds configuration for business day calculations
type BusinessDayConfig struct {
	WeekendDays []time.Weekday
	Holidays    []time.Time
}

// DefaultBusinessDayConfig treats Saturday and Sunday as weekend, without
// holidays
func DefaultBusinessDayConfig() *BusinessDayConfig {
	return &BusinessDayConfig{WeekendDays: []time.Weekday{time.Saturday, time.Sunday}}
}

// IsBusinessDay reports whether t is neither a weekend day nor a holiday
func (c *BusinessDayConfig) IsBusinessDay(t time.Time) bool {
	for _, wd := range c.WeekendDays {
		if t.Weekday() == wd {
			return false
		}
	}
	day := DateOnly(t)
	for _, h := range c.Holidays {
		if day.Equal(DateOnly(h)) {
			return false
		}
	}
	return true
}

// AddBusinessDays moves days business days forward, or backward when
// days is negative
func (c *BusinessDayConfig) AddBusinessDays(t time.Time, days int) time.Time {
	step := 1
	if days < 0 {
		step, days = -1, -days
	}
	for days > 0 {
		t = t.AddDate(0, 0, step)
		if c.IsBusinessDay(t) {
			days--
		}
	}
	return t
}

// BusinessDaysBetween counts business days from start to end, both
// inclusive. The count is negative when end precedes start.
func (c *BusinessDayConfig) BusinessDaysBetween(start, end time.Time) int {
	start, end = DateOnly(start), DateOnly(end)
	if start.After(end) {
		return -c.BusinessDaysBetween(end, start)
	}
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if c.IsBusinessDay(d) {
			count++
		}
	}
	return count
}

// DaysBetween returns the calendar days from start to end
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}
