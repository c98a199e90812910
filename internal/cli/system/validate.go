package system

import (
	"fmt"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Exit with an error when problems are found."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	ctx.Println("Validating study, sleep, habits, lectures and goals...")
	result := validation.New().Validate(ctx.Store.Snapshot())

	ctx.Println()
	ctx.Println(result.FormatReport())

	if cmd.Strict && result.HasConflicts() {
		return fmt.Errorf("validation found %d problem(s)", len(result.Conflicts))
	}
	return nil
}
