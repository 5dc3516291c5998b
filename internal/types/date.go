// Package types implements special types for the EasyFinances backend.
package types

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// dateLayout is the RFC3339 full-date format used for storage and JSON.
const dateLayout = "2006-01-02"

// Date is a calendar date without time of day.
//
// The underlying time is always midnight UTC so that two Dates for the
// same day compare equal.
type Date time.Time

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which a time occurs in that time's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// Today returns the current date in the local time zone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a string in RFC3339 full-date format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
//
// Both full dates and RFC3339 timestamps are accepted. For timestamps,
// only the date in the timestamp's own offset is kept.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}

	return d.UnmarshalParam(value)
}

// UnmarshalParam implements gin's binding.BindUnmarshaler so that
// dates can be used in query and form parameters.
func (d *Date) UnmarshalParam(value string) error {
	if value == "" {
		*d = Date{}
		return nil
	}

	if len(value) == len(dateLayout) {
		parsed, err := ParseDate(value)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}

	*d = DateOf(t)
	return nil
}

// Scan writes the value from the database.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into a date", value)
	}

	return nil
}

// scanString parses dates stored as text. Drivers that keep the time
// of day append it after the date, it is discarded.
func (d *Date) scanString(s string) error {
	if len(s) < len(dateLayout) {
		return fmt.Errorf("cannot scan %q into a date", s)
	}

	parsed, err := ParseDate(s[:len(dateLayout)])
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Value returns the value for the SQL driver to write to the database.
//
// Dates are written as YYYY-MM-DD so that comparisons work on SQLite,
// which stores them as text.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays returns the date n days after d. n may be negative.
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

// AddDate adds the specified amount of years, months and days.
func (d Date) AddDate(years, months, days int) Date {
	return Date(time.Time(d).AddDate(years, months, days))
}

// Before reports whether d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e are the same day.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}

// DaysUntil returns the number of days from d to e. It is negative
// when e is before d.
func (d Date) DaysUntil(e Date) int {
	return int(time.Time(e).Sub(time.Time(d)).Hours() / 24)
}

// MonthStart returns the first day of the month of d.
func (d Date) MonthStart() Date {
	t := time.Time(d)
	return NewDate(t.Year(), t.Month(), 1)
}

// MonthEnd returns the last day of the month of d.
func (d Date) MonthEnd() Date {
	return d.MonthStart().AddDate(0, 1, -1)
}

// YearStart returns January 1st of the year of d.
func (d Date) YearStart() Date {
	return NewDate(time.Time(d).Year(), time.January, 1)
}

// YearEnd returns December 31st of the year of d.
func (d Date) YearEnd() Date {
	return NewDate(time.Time(d).Year(), time.December, 31)
}

// WeekStart returns the Monday of the ISO week containing d.
func (d Date) WeekStart() Date {
	offset := (int(time.Time(d).Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// MinDate returns the earlier of two dates.
func MinDate(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}
