package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/errors"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/stats"
	"github.com/julianstephens/learnnova/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	Rm     HabitRmCmd     `cmd:"" help:"Remove a habit and its history."`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done, or undo it."`
	List   HabitListCmd   `cmd:"" help:"List habits with streaks." default:"1"`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	name, err := validation.HabitName(c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	if _, err := findHabit(ctx, name); err == nil {
		return errors.Invalid("habit %q already exists", name)
	}

	habit, ok := ctx.Store.AddHabit(name)
	if !ok {
		return fmt.Errorf("failed to add habit %q", name)
	}
	ctx.Printf("✓ Added habit: %s (ID: %s)\n", habit.Name, habit.ID)
	return nil
}

type HabitRmCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
}

func (c *HabitRmCmd) Run(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}
	if !ctx.Store.RemoveHabit(habit.ID) {
		return fmt.Errorf("failed to remove habit %q", habit.Name)
	}
	ctx.Printf("✓ Removed habit: %s\n", habit.Name)
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or ID."`
	Date string `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	if err := validation.Date(c.Date); err != nil {
		return err
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	habit, err := findHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	date := resolveDate(ctx, c.Date)
	if !ctx.Store.ToggleHabitCompletion(habit.ID, date) {
		return fmt.Errorf("failed to toggle habit %q", habit.Name)
	}

	updated, _ := ctx.Store.Habit(habit.ID)
	if updated.CompletedOn(date) {
		streak := stats.StreakLength(updated.CompletedDates, ctx.Store.Today())
		ctx.Printf("✓ %s done for %s (streak: %d)\n", updated.Name, date, streak)
	} else {
		ctx.Printf("○ %s not done for %s\n", updated.Name, date)
	}
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	habits := ctx.Store.Habits()
	if len(habits) == 0 {
		ctx.Println("No habits yet. Add one with 'learnnova habit add NAME'.")
		return nil
	}

	today := ctx.Store.Today()
	goal := ctx.Store.Goals().HabitsPerDay
	ctx.Printf("Habits (%d/%d done today):\n\n", stats.HabitsCompletedOn(habits, today), goal)
	for _, h := range habits {
		mark := "○"
		if h.CompletedOn(today) {
			mark = "✓"
		}
		ctx.Printf("  %s %-24s %s  streak %d\n", mark, h.Name, weekCalendar(h, today), stats.StreakLength(h.CompletedDates, today))
	}
	return nil
}

// weekCalendar renders the last seven days oldest first, ■ for done.
func weekCalendar(h models.Habit, today string) string {
	var b strings.Builder
	for _, mark := range stats.HabitWeek(h, today) {
		if mark.Done {
			b.WriteString("■")
		} else {
			b.WriteString("·")
		}
	}
	return b.String()
}

// findHabit matches an ID exactly, then a name case-insensitively.
func findHabit(ctx *cli.Context, nameOrID string) (models.Habit, error) {
	key := strings.TrimSpace(nameOrID)
	if h, ok := ctx.Store.Habit(key); ok {
		return h, nil
	}

	var matches []models.Habit
	for _, h := range ctx.Store.Habits() {
		if strings.EqualFold(h.Name, key) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return models.Habit{}, errors.Invalid("habit not found: %s", nameOrID)
	case 1:
		return matches[0], nil
	}
	return models.Habit{}, errors.Invalid("%d habits are named %q, use the ID instead", len(matches), nameOrID)
}
