package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/utils"
	"github.com/julianstephens/learnnova/internal/validation"
)

type formKind int

const (
	formStudy formKind = iota
	formSleep
	formHabit
	formLink
	formGoals
)

// StudyFormModel represents the form model for recording study time
type StudyFormModel struct {
	Hours   string
	Minutes string
	Date    string
}

// SleepFormModel represents the form model for logging a night of sleep
type SleepFormModel struct {
	Bedtime  string
	WakeTime string
	Note     string
	Date     string
}

type HabitFormModel struct {
	Name string
}

type LinkFormModel struct {
	Title string
	URL   string
}

// GoalsFormModel holds goals as the user types them, in hours
type GoalsFormModel struct {
	StudyHours string
	SleepHours string
	Habits     string
}

func optionalInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return n, nil
}

func validateInt(s string) error {
	_, err := optionalInt(s)
	return err
}

func validateHours(s string) error {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number of hours")
	}
	_, err = validation.HoursToMinutes(h)
	return err
}

func NewStudyForm(fm *StudyFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hours").
				Value(&fm.Hours).
				Validate(validateInt),
			huh.NewInput().
				Title("Minutes").
				Value(&fm.Minutes).
				Validate(validateInt),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, blank for today").
				Value(&fm.Date).
				Validate(validation.Date),
		),
	).WithTheme(huh.ThemeDracula())
}

func (fm *StudyFormModel) minutes() (int, error) {
	h, err := optionalInt(fm.Hours)
	if err != nil {
		return 0, err
	}
	m, err := optionalInt(fm.Minutes)
	if err != nil {
		return 0, err
	}
	return validation.StudyMinutes(h, m)
}

func NewSleepForm(fm *SleepFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Bedtime").
				Description("HH:MM").
				Value(&fm.Bedtime).
				Validate(validation.Clock),
			huh.NewInput().
				Title("Wake time").
				Description("HH:MM").
				Value(&fm.WakeTime).
				Validate(validation.Clock),
			huh.NewText().
				Title("Note").
				Value(&fm.Note),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD, blank for today").
				Value(&fm.Date).
				Validate(validation.Date),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					_, err := validation.HabitName(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewLinkForm(fm *LinkFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("YouTube URL").
				Value(&fm.URL).
				Validate(func(s string) error {
					_, _, err := validation.Link("-", s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newGoalsFormModel(g models.Goals) *GoalsFormModel {
	return &GoalsFormModel{
		StudyHours: strconv.FormatFloat(float64(g.StudyMinutes)/60, 'f', -1, 64),
		SleepHours: strconv.FormatFloat(float64(g.SleepMinutes)/60, 'f', -1, 64),
		Habits:     strconv.Itoa(g.HabitsPerDay),
	}
}

func NewGoalsForm(fm *GoalsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Daily study goal (hours)").
				Value(&fm.StudyHours).
				Validate(validateHours),
			huh.NewInput().
				Title("Nightly sleep goal (hours)").
				Value(&fm.SleepHours).
				Validate(validateHours),
			huh.NewInput().
				Title("Habits per day").
				Value(&fm.Habits).
				Validate(validateInt),
		),
	).WithTheme(huh.ThemeDracula())
}

func (fm *GoalsFormModel) goals(current models.Goals) (models.Goals, error) {
	study, err := strconv.ParseFloat(strings.TrimSpace(fm.StudyHours), 64)
	if err != nil {
		return current, fmt.Errorf("invalid study hours %q", fm.StudyHours)
	}
	sleep, err := strconv.ParseFloat(strings.TrimSpace(fm.SleepHours), 64)
	if err != nil {
		return current, fmt.Errorf("invalid sleep hours %q", fm.SleepHours)
	}
	habits, err := optionalInt(fm.Habits)
	if err != nil {
		return current, err
	}
	return validation.Goals(current, study, sleep, habits)
}

// openForm switches to the form of the given kind, seeded from the store
// where that makes sense.
func (m *Model) openForm(kind formKind) {
	m.previousState = m.state
	m.activeForm = kind
	m.formError = ""

	switch kind {
	case formStudy:
		m.studyForm = &StudyFormModel{}
		m.form = NewStudyForm(m.studyForm)
	case formSleep:
		m.sleepForm = &SleepFormModel{}
		m.form = NewSleepForm(m.sleepForm)
	case formHabit:
		m.habitForm = &HabitFormModel{}
		m.form = NewHabitForm(m.habitForm)
	case formLink:
		m.linkForm = &LinkFormModel{}
		m.form = NewLinkForm(m.linkForm)
	case formGoals:
		m.goalsForm = newGoalsFormModel(m.store.Goals())
		m.form = NewGoalsForm(m.goalsForm)
	}
	m.state = StateForm
}

// applyForm writes a completed form to the store and returns a status line.
func (m *Model) applyForm() (string, error) {
	switch m.activeForm {
	case formStudy:
		total, err := m.studyForm.minutes()
		if err != nil {
			return "", err
		}
		if !m.store.RecordStudy(total, m.studyForm.Date) {
			return "", fmt.Errorf("study time was not recorded")
		}
		return "Recorded " + utils.FormatMinutes(total) + " of study", nil

	case formSleep:
		total, err := validation.SleepMinutes(0, m.sleepForm.Bedtime, m.sleepForm.WakeTime)
		if err != nil {
			return "", err
		}
		ok := m.store.RecordSleep(total, models.SleepDetails{
			Date:     m.sleepForm.Date,
			Bedtime:  m.sleepForm.Bedtime,
			WakeTime: m.sleepForm.WakeTime,
			Note:     strings.TrimSpace(m.sleepForm.Note),
		})
		if !ok {
			return "", fmt.Errorf("sleep was not recorded")
		}
		return "Logged " + utils.FormatMinutes(total) + " of sleep", nil

	case formHabit:
		name, err := validation.HabitName(m.habitForm.Name)
		if err != nil {
			return "", err
		}
		h, ok := m.store.AddHabit(name)
		if !ok {
			return "", fmt.Errorf("habit was not added")
		}
		return "Added habit " + h.Name, nil

	case formLink:
		title, url, err := validation.Link(m.linkForm.Title, m.linkForm.URL)
		if err != nil {
			return "", err
		}
		if _, ok := m.store.AddYoutubeLink(title, url); !ok {
			return "", fmt.Errorf("link was not saved")
		}
		return "Saved " + title, nil

	case formGoals:
		next, err := m.goalsForm.goals(m.store.Goals())
		if err != nil {
			return "", err
		}
		applied := m.store.UpdateGoals(next)
		return fmt.Sprintf("Goals set: study %s, sleep %s, %d habits",
			utils.FormatMinutes(applied.StudyMinutes), utils.FormatMinutes(applied.SleepMinutes), applied.HabitsPerDay), nil
	}
	return "", nil
}
