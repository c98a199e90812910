package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/learnnova/internal/backup"
	"github.com/julianstephens/learnnova/internal/cli"
	"github.com/julianstephens/learnnova/internal/constants"
	"github.com/julianstephens/learnnova/internal/logger"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.BackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		// Bare filenames are looked up in the backup directory first
		possiblePath := filepath.Join(mgr.BackupDir(), c.BackupFile)
		if _, err := os.Stat(possiblePath); err == nil {
			backupPath = possiblePath
		}
	}
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		ctx.Println("⚠️  WARNING: This will replace your current data with the backup.")
		ctx.Println("A backup of your current data will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", filepath.Base(backupPath))
		confirmed, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	// Close the current store connection before restoring
	if err := ctx.Provider.Close(); err != nil {
		logger.Warn("Failed to close storage before restore", "error", err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Data restored successfully!")
	if safety != "" {
		ctx.Printf("  Previous data saved as: %s\n", filepath.Base(safety))
	}
	ctx.Printf("Restart any running %s processes to use the restored data.\n", constants.AppName)
	return nil
}
