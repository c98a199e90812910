package tracking

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/stats"
	"github.com/julianstephens/learnnova/internal/utils"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

type DashboardCmd struct {
	JSON bool `help:"Print the summary as JSON."`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	sum := stats.Summarize(ctx.Store)

	if c.JSON {
		out, err := sonic.ConfigStd.MarshalIndent(sum, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		ctx.Println(string(out))
		return nil
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(24), progress.WithoutPercentage())
	row := func(label string, p stats.Progress, value, goal string) {
		ctx.Printf("%-7s %s %3.0f%%  %s / %s\n", label, bar.ViewAs(p.Percent/100), p.Percent, value, goal)
	}

	ctx.Println(headerStyle.Render("Today, " + sum.Date))
	ctx.Println()
	row("Study", sum.Study, utils.FormatMinutes(sum.Study.Value), utils.FormatMinutes(sum.Study.Goal))
	row("Sleep", sum.Sleep, utils.FormatMinutes(sum.Sleep.Value), utils.FormatMinutes(sum.Sleep.Goal))
	row("Habits", sum.Habits, fmt.Sprint(sum.Habits.Value), fmt.Sprint(sum.Habits.Goal))
	ctx.Printf("\nAverage sleep (last 7 nights): %.1fh\n", sum.AvgSleepHours)

	if len(sum.HabitStreaks) > 0 {
		ctx.Println()
		ctx.Println(headerStyle.Render("Streaks"))
		for _, h := range sum.HabitStreaks {
			mark := "○"
			if h.Done {
				mark = "✓"
			}
			ctx.Printf("  %s %s: %d %s\n", mark, h.Name, h.Streak, plural(h.Streak, "day"))
		}
	}

	if len(sum.RecentLinks) > 0 {
		ctx.Println()
		ctx.Println(headerStyle.Render("Recent lectures"))
		for _, l := range sum.RecentLinks {
			ctx.Printf("  %s\n    %s\n", l.Title, l.URL)
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
