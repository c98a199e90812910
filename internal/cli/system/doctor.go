package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/learnnova/internal/backup"
	"github.com/julianstephens/learnnova/internal/chat"
	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/validation"
)

type DoctorCmd struct{}

// schemaReporter is implemented by the SQL-backed providers.
type schemaReporter interface {
	SchemaStatus() (current, latest int, err error)
}

type check struct {
	name string
	// warn marks checks whose failure does not fail the command.
	warn bool
	run  func(*cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Data validation", run: checkValidation},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Chat credentials", warn: true, run: checkChatCredentials},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if !reachable && c.name == "Data validation" {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Provider.Keys(constants.KeyNamespace); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sr, ok := ctx.Provider.(schemaReporter)
	if !ok {
		// Memory and JSON providers have no schema
		return nil
	}
	current, latest, err := sr.SchemaStatus()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, backup.ErrUnsupported) {
		return nil
	}
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	if err := ctx.Hydrate(); err != nil {
		return err
	}
	result := validation.New().Validate(ctx.Store.Snapshot())
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found, run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Location == nil {
		return errors.New("no timezone configured")
	}
	ctx.Printf("   Note: today is %s in %s\n", ctx.Store.Today(), ctx.Location)
	return nil
}

func checkChatCredentials(ctx *cli.Context) error {
	if ctx.Config.APIKey() == "" {
		return fmt.Errorf("no %s API key set, chat replies will use the fallback message", ctx.Config.Chat.Provider)
	}
	if _, err := chat.Discover(); err == nil {
		ctx.Println("   Note: a chat server is running")
	}
	return nil
}
