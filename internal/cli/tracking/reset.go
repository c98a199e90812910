package tracking

import (
	"fmt"
	"strings"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/errors"
)

type ResetCmd struct {
	Slice string `arg:"" help:"What to reset: study, sleep, habits, lectures, goals or all."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	target := strings.ToLower(strings.TrimSpace(c.Slice))
	slice, ok := constants.ParseSlice(target)
	if !ok && target != "all" {
		return errors.Invalid("unknown slice %q (want study, sleep, habits, lectures, goals or all)", c.Slice)
	}

	if !c.Yes {
		confirmed, err := ctx.Confirm(fmt.Sprintf("This permanently erases %s data. Continue?", target))
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.Hydrate(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	if target == "all" {
		ctx.Store.ResetAll()
		ctx.Println("✓ All data reset")
		return nil
	}
	if !ctx.Store.Reset(slice) {
		return fmt.Errorf("failed to reset %s", slice)
	}
	ctx.Printf("✓ %s reset\n", slice)
	return nil
}
