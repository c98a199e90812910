package store

import (
	"time"

	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/models"
)

// Snapshot is a point-in-time copy of every slice, used for export and
// import.
type Snapshot struct {
	Version    string               `json:"version" yaml:"version"`
	ExportedAt time.Time            `json:"exportedAt" yaml:"exportedAt"`
	Study      []models.StudyEntry  `json:"study" yaml:"study"`
	Sleep      []models.SleepEntry  `json:"sleep" yaml:"sleep"`
	Habits     []models.Habit       `json:"habits" yaml:"habits"`
	Lectures   []models.YoutubeLink `json:"lectures" yaml:"lectures"`
	Goals      models.Goals         `json:"goals" yaml:"goals"`
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Version:    constants.Version,
		ExportedAt: s.now().UTC(),
		Study:      s.StudyEntries(),
		Sleep:      s.SleepEntries(),
		Habits:     s.Habits(),
		Lectures:   s.YoutubeLinks(),
		Goals:      s.Goals(),
	}
}

// Restore replaces every slice with the contents of snap. Entries with
// duplicate dates are merged using the same rules as the mutators. Invalid
// entries, blank names and repeated IDs are dropped.
func (s *Store) Restore(snap Snapshot) {
	s.ResetAll()

	s.study.Set(cleanStudy(snap.Study))
	s.notify(constants.SliceStudy)

	s.sleep.Set(cleanSleep(snap.Sleep))
	s.notify(constants.SliceSleep)

	s.habits.Set(cleanHabits(snap.Habits))
	s.notify(constants.SliceHabits)

	s.links.Set(cleanLinks(snap.Lectures))
	s.notify(constants.SliceLinks)

	s.UpdateGoals(snap.Goals)
}
