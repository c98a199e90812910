package store

import (
	"cmp"
	"slices"
	"strings"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/models"
)

// RecordStudy adds minutes to the study total of date ("" means today).
// Non-positive minutes and malformed dates are ignored.
func (s *Store) RecordStudy(minutes int, date string) bool {
	day, ok := s.resolveDate(date)
	if !ok || minutes <= 0 {
		return false
	}

	s.study.Update(func(entries []models.StudyEntry) []models.StudyEntry {
		next := slices.Clone(entries)
		if i := slices.IndexFunc(next, func(e models.StudyEntry) bool { return e.Date == day }); i >= 0 {
			next[i].Minutes += minutes
		} else {
			next = append(next, models.StudyEntry{ID: s.newID(), Date: day, Minutes: minutes})
		}
		slices.SortStableFunc(next, func(a, b models.StudyEntry) int { return cmp.Compare(b.Date, a.Date) })
		return next
	})
	s.notify(constants.SliceStudy)
	return true
}

// RecordSleep stores the sleep for details.Date ("" means today), replacing
// anything already recorded for that date. The entry keeps its original ID.
func (s *Store) RecordSleep(durationMinutes int, details models.SleepDetails) bool {
	day, ok := s.resolveDate(details.Date)
	if !ok || durationMinutes <= 0 {
		return false
	}

	s.sleep.Update(func(entries []models.SleepEntry) []models.SleepEntry {
		next := slices.Clone(entries)
		entry := models.SleepEntry{
			Date:            day,
			DurationMinutes: durationMinutes,
			Bedtime:         details.Bedtime,
			WakeTime:        details.WakeTime,
			Note:            details.Note,
		}
		if i := slices.IndexFunc(next, func(e models.SleepEntry) bool { return e.Date == day }); i >= 0 {
			entry.ID = next[i].ID
			next[i] = entry
		} else {
			entry.ID = s.newID()
			next = append(next, entry)
		}
		slices.SortStableFunc(next, func(a, b models.SleepEntry) int { return cmp.Compare(b.Date, a.Date) })
		return next
	})
	s.notify(constants.SliceSleep)
	return true
}

// AddHabit appends a habit named name (trimmed). Blank names are ignored.
func (s *Store) AddHabit(name string) (models.Habit, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, false
	}

	habit := models.Habit{ID: s.newID(), Name: name, CompletedDates: []string{}}
	s.habits.Update(func(habits []models.Habit) []models.Habit {
		return append(slices.Clone(habits), habit)
	})
	s.notify(constants.SliceHabits)
	return habit, true
}

func (s *Store) RemoveHabit(id string) bool {
	if _, ok := s.Habit(id); !ok {
		return false
	}
	s.habits.Update(func(habits []models.Habit) []models.Habit {
		return slices.DeleteFunc(slices.Clone(habits), func(h models.Habit) bool { return h.ID == id })
	})
	s.notify(constants.SliceHabits)
	return true
}

// ToggleHabitCompletion flips whether habit id was completed on date
// ("" means today). Unknown IDs are ignored.
func (s *Store) ToggleHabitCompletion(id, date string) bool {
	day, ok := s.resolveDate(date)
	if !ok {
		return false
	}
	if _, ok := s.Habit(id); !ok {
		return false
	}

	s.habits.Update(func(habits []models.Habit) []models.Habit {
		i := slices.IndexFunc(habits, func(h models.Habit) bool { return h.ID == id })
		if i < 0 {
			return habits
		}
		next := slices.Clone(habits)
		h := next[i].Clone()
		if h.CompletedOn(day) {
			h.CompletedDates = slices.DeleteFunc(h.CompletedDates, func(d string) bool { return d == day })
		} else {
			h.CompletedDates = append(h.CompletedDates, day)
		}
		next[i] = h
		return next
	})
	s.notify(constants.SliceHabits)
	return true
}

// AddYoutubeLink saves a link at the front of the list. Blank titles or
// URLs are ignored.
func (s *Store) AddYoutubeLink(title, url string) (models.YoutubeLink, bool) {
	title, url = strings.TrimSpace(title), strings.TrimSpace(url)
	if title == "" || url == "" {
		return models.YoutubeLink{}, false
	}

	link := models.YoutubeLink{ID: s.newID(), Title: title, URL: url, AddedAt: s.now().UTC()}
	s.links.Update(func(links []models.YoutubeLink) []models.YoutubeLink {
		return append([]models.YoutubeLink{link}, links...)
	})
	s.notify(constants.SliceLinks)
	return link, true
}

func (s *Store) RemoveYoutubeLink(id string) bool {
	match := func(l models.YoutubeLink) bool { return l.ID == id }
	if !slices.ContainsFunc(s.links.Value(), match) {
		return false
	}
	s.links.Update(func(links []models.YoutubeLink) []models.YoutubeLink {
		return slices.DeleteFunc(slices.Clone(links), match)
	})
	s.notify(constants.SliceLinks)
	return true
}

// UpdateGoals replaces the goals after raising each field to its floor.
func (s *Store) UpdateGoals(goals models.Goals) models.Goals {
	clamped := goals.Clamp()
	s.goals.Set(clamped)
	s.notify(constants.SliceGoals)
	return clamped
}

// Reset restores one slice to its default and erases its durable copy.
func (s *Store) Reset(slice constants.Slice) bool {
	switch slice {
	case constants.SliceStudy:
		s.study.Reset()
	case constants.SliceSleep:
		s.sleep.Reset()
	case constants.SliceHabits:
		s.habits.Reset()
	case constants.SliceLinks:
		s.links.Reset()
	case constants.SliceGoals:
		s.goals.Reset()
	default:
		return false
	}
	s.notify(slice)
	return true
}

func (s *Store) ResetAll() {
	for _, slice := range constants.AllSlices {
		s.Reset(slice)
	}
}
