package backups

import (
	"fmt"
	"os"

	"github.com/julianstephens/learnnova/internal/backup"
	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/validation"
)

type ExportCmd struct {
	Format string `help:"Output format (json or yaml). Defaults to the --out extension, else json."`
	Out    string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.Out)
	if err != nil {
		return err
	}
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	snap := ctx.Store.Snapshot()

	if c.Out == "" {
		return backup.Export(ctx.Stdout(), snap, format)
	}

	f, err := os.OpenFile(c.Out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := backup.Export(f, snap, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	ctx.Printf("✓ Exported %d study, %d sleep, %d habit and %d lecture entries to %s\n",
		len(snap.Study), len(snap.Sleep), len(snap.Habits), len(snap.Lectures), c.Out)
	return nil
}

type ImportCmd struct {
	File   string `arg:"" help:"Snapshot file written by export." type:"existingfile"`
	Format string `help:"Input format (json or yaml). Defaults to the file extension."`
	Yes    bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format, err := resolveFormat(c.Format, c.File)
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := backup.Import(f, format)
	if err != nil {
		return err
	}

	result := validation.New().Validate(snap)
	if result.HasConflicts() {
		ctx.Println(result.FormatReport())
		ctx.Println("Invalid entries are dropped and same-day entries are merged on import.")
	}

	if !c.Yes {
		ctx.Printf("Import %d study, %d sleep, %d habit and %d lecture entries from %s.\n",
			len(snap.Study), len(snap.Sleep), len(snap.Habits), len(snap.Lectures), c.File)
		confirmed, err := ctx.Confirm("This replaces all current data. Continue?")
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Import cancelled.")
			return nil
		}
	}

	if err := ctx.Hydrate(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	ctx.Store.Restore(snap)

	ctx.Printf("✓ Imported snapshot from %s\n", c.File)
	return nil
}

func resolveFormat(flag, path string) (backup.Format, error) {
	if flag != "" {
		return backup.ParseFormat(flag)
	}
	if path != "" {
		return backup.FormatFromPath(path), nil
	}
	return backup.FormatJSON, nil
}
