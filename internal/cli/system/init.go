package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing data before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	kind := storage.KindOf(ctx.Provider.GetConfigPath())

	if c.Force && (kind == storage.KindSQLite || kind == storage.KindJSON) {
		dbPath := ctx.Provider.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Database exists, close it first to prevent file locking issues
			if err := ctx.Provider.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized learnnova storage at: %s\n", displayLocation(ctx.Provider.GetConfigPath()))

	// Shared databases cannot be deleted, so a forced init clears our keys instead.
	if c.Force && kind == storage.KindPostgres {
		if err := ctx.Hydrate(); err != nil {
			return err
		}
		ctx.Store.ResetAll()
		ctx.Println("Cleared all learnnova data")
	}

	if ctx.SettingsPath != "" {
		if _, err := os.Stat(ctx.SettingsPath); os.IsNotExist(err) {
			if err := ctx.Config.Write(ctx.SettingsPath, false); err != nil {
				logger.Warn("Failed to write default settings", "path", ctx.SettingsPath, "error", err)
			} else {
				ctx.Printf("Wrote default settings to: %s\n", ctx.SettingsPath)
			}
		}
	}
	return nil
}

// displayLocation masks any password in a connection string.
func displayLocation(location string) string {
	if storage.KindOf(location) == storage.KindPostgres {
		return maskPassword(location)
	}
	return location
}
