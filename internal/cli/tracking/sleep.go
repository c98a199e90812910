package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/stats"
	"github.com/julianstephens/learnnova/internal/utils"
	"github.com/julianstephens/learnnova/internal/validation"
)

type SleepCmd struct {
	Log  SleepLogCmd  `cmd:"" help:"Record a night of sleep."`
	Show SleepShowCmd `cmd:"" help:"Show recent sleep." default:"1"`
}

type SleepLogCmd struct {
	Minutes int    `help:"Sleep duration in minutes."`
	Bed     string `help:"Bedtime (HH:MM)."`
	Wake    string `help:"Wake time (HH:MM)."`
	Date    string `help:"Date (YYYY-MM-DD), defaults to today."`
	Note    string `help:"Free-form note."`
}

func (c *SleepLogCmd) Run(ctx *cli.Context) error {
	if err := validation.Date(c.Date); err != nil {
		return err
	}
	minutes, err := validation.SleepMinutes(c.Minutes, c.Bed, c.Wake)
	if err != nil {
		return err
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	date := resolveDate(ctx, c.Date)
	details := models.SleepDetails{
		Date:     date,
		Bedtime:  c.Bed,
		WakeTime: c.Wake,
		Note:     strings.TrimSpace(c.Note),
	}
	if !ctx.Store.RecordSleep(minutes, details) {
		return fmt.Errorf("failed to record sleep for %s", date)
	}

	ctx.Printf("✓ Recorded %s of sleep for %s\n", utils.FormatMinutes(minutes), date)
	return nil
}

type SleepShowCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *SleepShowCmd) Run(ctx *cli.Context) error {
	if err := checkDays(c.Days); err != nil {
		return err
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	today := ctx.Store.Today()
	dates, err := utils.LastNDates(today, c.Days)
	if err != nil {
		return err
	}
	entries := ctx.Store.SleepEntries()
	byDate := make(map[string]models.SleepEntry, len(entries))
	for _, e := range entries {
		byDate[e.Date] = e
	}
	goal := ctx.Store.Goals().SleepMinutes

	ctx.Printf("Sleep, last %d days (goal %s/night):\n\n", c.Days, utils.FormatMinutes(goal))
	for _, d := range dates {
		e, ok := byDate[d]
		if !ok {
			ctx.Printf("  %s  -\n", d)
			continue
		}
		line := fmt.Sprintf("  %s  %-8s %s", d, utils.FormatMinutes(e.DurationMinutes), goalMark(e.DurationMinutes, goal))
		if e.Bedtime != "" && e.WakeTime != "" {
			line += fmt.Sprintf("  %s → %s", e.Bedtime, e.WakeTime)
		}
		if e.Note != "" {
			line += "  " + e.Note
		}
		ctx.Println(strings.TrimRight(line, " "))
	}
	ctx.Printf("\nAverage of last 7 nights: %.1fh\n", stats.AverageSleepHours(entries))
	return nil
}
