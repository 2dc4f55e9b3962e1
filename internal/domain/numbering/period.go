package numbering

import (
	"strconv"
	"time"
)

// Locale carries the calendar rules used to derive reset windows. The shop
// runs on a fixed UTC offset rather than a named time zone so that period
// derivation stays deterministic regardless of the host's tz database.
type Locale struct {
	UTCOffsetMinutes     int        // local wall-clock offset from UTC
	FiscalYearStartMonth time.Month // first month of the accounting year
}

// DefaultLocale returns the deployment default: UTC+5:30, fiscal year from April
func DefaultLocale() Locale {
	return Locale{
		UTCOffsetMinutes:     330,
		FiscalYearStartMonth: time.April,
	}
}

// localTime shifts an instant to the locale's wall clock
func (l Locale) localTime(at time.Time) time.Time {
	return at.UTC().Add(time.Duration(l.UTCOffsetMinutes) * time.Minute)
}

// PeriodKey returns the string identifying the reset window containing the
// given instant for the given family. Daily families map to the local calendar
// date (YYYY-MM-DD); fiscal-year families map to the 4-digit year in which the
// fiscal year started. Total over all valid instants.
func (l Locale) PeriodKey(family Family, at time.Time) string {
	local := l.localTime(at)
	if family.ResetsDaily() {
		return local.Format("2006-01-02")
	}
	return strconv.Itoa(l.FiscalYearStart(at))
}

// FiscalYearStart returns the calendar year in which the fiscal year
// containing the given instant started, as observed on the local wall clock.
func (l Locale) FiscalYearStart(at time.Time) int {
	local := l.localTime(at)
	year := local.Year()
	if local.Month() < l.FiscalYearStartMonth {
		year--
	}
	return year
}

// BusinessDate returns the local calendar date (YYYY-MM-DD) for an instant.
// This is the same value a daily counter keys on.
func (l Locale) BusinessDate(at time.Time) string {
	return l.localTime(at).Format("2006-01-02")
}
