package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/learnnova/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// FormatDate renders t as a calendar date in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseTime parses a clock string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddDays shifts an ISO date by n calendar days. Arithmetic is done on the
// civil date so daylight saving transitions never skip or repeat a day.
func AddDays(dateStr string, n int) (string, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// LastNDates returns the n dates ending at today inclusive, oldest first.
func LastNDates(today string, n int) ([]string, error) {
	end, err := ParseDate(today)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return []string{}, nil
	}
	dates := make([]string, n)
	for i := 0; i < n; i++ {
		dates[i] = end.AddDate(0, 0, i-(n-1)).Format(constants.DateFormat)
	}
	return dates, nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// FormatMinutes renders a minute count as "2h 05m" / "45m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}
