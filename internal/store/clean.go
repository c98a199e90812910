package store

import (
	"cmp"
	"slices"
	"strings"

	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/utils"
)

// The clean functions repair slices that did not come from the mutators
// (persisted snapshots and imports). They never return nil.

// cleanStudy drops invalid entries and merges same-day entries by adding
// their minutes.
func cleanStudy(entries []models.StudyEntry) []models.StudyEntry {
	out := make([]models.StudyEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Minutes <= 0 || !utils.ValidateDateFormat(e.Date) {
			continue
		}
		if i := slices.IndexFunc(out, func(x models.StudyEntry) bool { return x.Date == e.Date }); i >= 0 {
			out[i].Minutes += e.Minutes
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b models.StudyEntry) int { return cmp.Compare(b.Date, a.Date) })
	return out
}

// cleanSleep drops invalid entries. Sleep replaces per date, so the last
// entry for a date wins and keeps the first entry's ID.
func cleanSleep(entries []models.SleepEntry) []models.SleepEntry {
	out := make([]models.SleepEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.DurationMinutes <= 0 || !utils.ValidateDateFormat(e.Date) {
			continue
		}
		if i := slices.IndexFunc(out, func(x models.SleepEntry) bool { return x.Date == e.Date }); i >= 0 {
			e.ID = out[i].ID
			out[i] = e
			continue
		}
		out = append(out, e)
	}
	slices.SortStableFunc(out, func(a, b models.SleepEntry) int { return cmp.Compare(b.Date, a.Date) })
	return out
}

// cleanHabits trims names, drops blank names and repeated IDs, and keeps
// each valid completion date once.
func cleanHabits(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, 0, len(habits))
	seen := make(map[string]bool, len(habits))
	for _, h := range habits {
		h.Name = strings.TrimSpace(h.Name)
		if h.ID == "" || h.Name == "" || seen[h.ID] {
			continue
		}
		seen[h.ID] = true

		dates := make([]string, 0, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			if utils.ValidateDateFormat(d) && !slices.Contains(dates, d) {
				dates = append(dates, d)
			}
		}
		h.CompletedDates = dates
		out = append(out, h)
	}
	return out
}

// cleanLinks trims titles and URLs, and drops blanks and repeated IDs.
// Order is kept as given (newest first).
func cleanLinks(links []models.YoutubeLink) []models.YoutubeLink {
	out := make([]models.YoutubeLink, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		l.Title, l.URL = strings.TrimSpace(l.Title), strings.TrimSpace(l.URL)
		if l.ID == "" || l.Title == "" || l.URL == "" || seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		out = append(out, l)
	}
	return out
}

func cleanGoals(g models.Goals) models.Goals { return g.Clamp() }
