package tracking

import (
	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/errors"
	"github.com/julianstephens/learnnova/internal/models"
	"github.com/julianstephens/learnnova/internal/utils"
	"github.com/julianstephens/learnnova/internal/validation"
)

type GoalsCmd struct {
	Show GoalsShowCmd `cmd:"" help:"Show daily goals." default:"1"`
	Set  GoalsSetCmd  `cmd:"" help:"Change daily goals."`
}

type GoalsShowCmd struct{}

func (c *GoalsShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	printGoals(ctx, ctx.Store.Goals())
	return nil
}

// GoalsSetCmd leaves any flag that is not given (negative) unchanged.
type GoalsSetCmd struct {
	StudyHours float64 `help:"Daily study goal in hours." default:"-1"`
	SleepHours float64 `help:"Nightly sleep goal in hours." default:"-1"`
	Habits     int     `help:"Habits to complete per day." default:"-1"`
}

func (c *GoalsSetCmd) Run(ctx *cli.Context) error {
	if c.StudyHours < 0 && c.SleepHours < 0 && c.Habits < 0 {
		return errors.Invalid("nothing to change, pass --study-hours, --sleep-hours or --habits")
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	next, err := validation.Goals(ctx.Store.Goals(), c.StudyHours, c.SleepHours, c.Habits)
	if err != nil {
		return err
	}
	saved := ctx.Store.UpdateGoals(next)

	ctx.Println("✓ Goals updated")
	printGoals(ctx, saved)
	return nil
}

func printGoals(ctx *cli.Context, g models.Goals) {
	ctx.Printf("Study:  %s per day\n", utils.FormatMinutes(g.StudyMinutes))
	ctx.Printf("Sleep:  %s per night\n", utils.FormatMinutes(g.SleepMinutes))
	ctx.Printf("Habits: %d per day\n", g.HabitsPerDay)
}
