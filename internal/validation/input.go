package validation

import (
	"math"
	"net/url"
	"strings"

	"github.com/julianstephens/learnnova/internal/errors"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/stats"
	"github.com/julianstephens/learnnova/internal/utils"
)

// StudyMinutes converts an hours + minutes entry into a positive total.
func StudyMinutes(hours, minutes int) (int, error) {
	if hours < 0 || minutes < 0 {
		return 0, errors.Invalid("hours and minutes must not be negative")
	}
	total := hours*60 + minutes
	if total <= 0 {
		return 0, errors.Invalid("study time must be greater than zero")
	}
	return total, nil
}

// SleepMinutes resolves a sleep entry given either a duration or a
// bedtime/wake time pair.
func SleepMinutes(minutes int, bedtime, wakeTime string) (int, error) {
	if bedtime != "" || wakeTime != "" {
		if minutes > 0 {
			return 0, errors.Invalid("use either --minutes or --bed/--wake, not both")
		}
		if err := Clock(bedtime); err != nil {
			return 0, err
		}
		if err := Clock(wakeTime); err != nil {
			return 0, err
		}
		minutes = stats.DurationBetween(bedtime, wakeTime)
	}
	if minutes <= 0 {
		return 0, errors.Invalid("sleep duration must be greater than zero")
	}
	return minutes, nil
}

// Date accepts "" (meaning today) or a YYYY-MM-DD date.
func Date(date string) error {
	if date == "" || utils.ValidateDateFormat(date) {
		return nil
	}
	return errors.Invalid("invalid date %q, expected YYYY-MM-DD", date)
}

// Clock requires an HH:MM time.
func Clock(value string) error {
	if value == "" {
		return errors.Invalid("time is required, expected HH:MM")
	}
	if !utils.ValidateTimeFormat(value) {
		return errors.Invalid("invalid time %q, expected HH:MM", value)
	}
	return nil
}

func HabitName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.Invalid("habit name cannot be empty")
	}
	return name, nil
}

// Link trims and checks a lecture title and URL. The URL must be absolute
// http or https.
func Link(title, rawURL string) (string, string, error) {
	title, rawURL = strings.TrimSpace(title), strings.TrimSpace(rawURL)
	if title == "" {
		return "", "", errors.Invalid("link title cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if rawURL == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "", errors.Invalid("invalid URL %q", rawURL)
	}
	return title, rawURL, nil
}

// HoursToMinutes converts a goal entered in hours, rounding to the nearest
// minute.
func HoursToMinutes(hours float64) (int, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return 0, errors.Invalid("hours must be a non-negative number")
	}
	return int(math.Round(hours * 60)), nil
}

// Goals builds goals from hour-based inputs, keeping current values for
// anything left unset (negative).
func Goals(current models.Goals, studyHours, sleepHours float64, habits int) (models.Goals, error) {
	next := current
	if studyHours >= 0 {
		m, err := HoursToMinutes(studyHours)
		if err != nil {
			return current, err
		}
		next.StudyMinutes = m
	}
	if sleepHours >= 0 {
		m, err := HoursToMinutes(sleepHours)
		if err != nil {
			return current, err
		}
		next.SleepMinutes = m
	}
	if habits >= 0 {
		next.HabitsPerDay = habits
	}
	return next, nil
}
