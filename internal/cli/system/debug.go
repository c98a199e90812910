package system

import (
	"fmt"
	"slices"

	"github.com/bytedance/sonic"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/storage"
)

type DebugCmd struct {
	DBPath *DebugDBPathCmd `cmd:"" help:"Show storage location."`
	Keys   *DebugKeysCmd   `cmd:"" help:"List the raw keys held in storage."`
	Dump   *DebugDumpCmd   `cmd:"" help:"Dump one slice as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	path := ctx.Provider.GetConfigPath()
	output := map[string]string{
		"path": displayLocation(path),
		"kind": string(storage.KindOf(path)),
	}
	return printJSON(ctx, output)
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Provider.Keys("")
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}
	slices.Sort(keys)
	for _, k := range keys {
		ctx.Println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Slice string `arg:"" help:"Slice to dump (study, sleep, habits, lectures, goals)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	slice, ok := constants.ParseSlice(cmd.Slice)
	if !ok {
		return fmt.Errorf("unknown slice %q", cmd.Slice)
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}

	snap := ctx.Store.Snapshot()
	var value any
	switch slice {
	case constants.SliceStudy:
		value = snap.Study
	case constants.SliceSleep:
		value = snap.Sleep
	case constants.SliceHabits:
		value = snap.Habits
	case constants.SliceLinks:
		value = snap.Lectures
	case constants.SliceGoals:
		value = snap.Goals
	}
	return printJSON(ctx, value)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
