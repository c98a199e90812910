// Package tracking implements the commands that record and report study,
// sleep, habits, lectures and goals.
package tracking

import (
	"fmt"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/errors"
	"github.com/julianstephens/learnnova/internal/stats"
	"github.com/julianstephens/learnnova/internal/utils"
	"github.com/julianstephens/learnnova/internal/validation"
)

const maxShowDays = 365

type StudyCmd struct {
	Add  StudyAddCmd  `cmd:"" help:"Record study time."`
	Show StudyShowCmd `cmd:"" help:"Show recent study time." default:"1"`
}

type StudyAddCmd struct {
	Hours   int    `help:"Hours studied." default:"0"`
	Minutes int    `help:"Minutes studied." default:"0"`
	Date    string `help:"Date (YYYY-MM-DD), defaults to today."`
}

func (c *StudyAddCmd) Run(ctx *cli.Context) error {
	if err := validation.Date(c.Date); err != nil {
		return err
	}
	total, err := validation.StudyMinutes(c.Hours, c.Minutes)
	if err != nil {
		return err
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	date := resolveDate(ctx, c.Date)
	if !ctx.Store.RecordStudy(total, date) {
		return fmt.Errorf("failed to record study for %s", date)
	}

	dayTotal := stats.StudyMinutesOn(ctx.Store.StudyEntries(), date)
	ctx.Printf("✓ Recorded %s of study for %s (total %s)\n",
		utils.FormatMinutes(total), date, utils.FormatMinutes(dayTotal))
	return nil
}

type StudyShowCmd struct {
	Days int `help:"Number of days to show." default:"7"`
}

func (c *StudyShowCmd) Run(ctx *cli.Context) error {
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
	goal := ctx.Store.Goals().StudyMinutes
	byDate := stats.StudyByDate(ctx.Store.StudyEntries())

	total := 0
	ctx.Printf("Study, last %d days (goal %s/day):\n\n", c.Days, utils.FormatMinutes(goal))
	for _, d := range dates {
		minutes := byDate[d]
		total += minutes
		ctx.Printf("  %s  %-8s %s\n", d, utils.FormatMinutes(minutes), goalMark(minutes, goal))
	}
	ctx.Printf("\nTotal: %s\n", utils.FormatMinutes(total))
	return nil
}

func resolveDate(ctx *cli.Context, date string) string {
	if date == "" {
		return ctx.Store.Today()
	}
	return date
}

func checkDays(days int) error {
	if days < 1 || days > maxShowDays {
		return errors.Invalid("--days must be between 1 and %d", maxShowDays)
	}
	return nil
}

func goalMark(value, goal int) string {
	if goal > 0 && value >= goal {
		return "✓"
	}
	return ""
}
