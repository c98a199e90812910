// Package cli holds the state shared by every learnnova command.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/learnnova/internal/backup"
	"github.com/julianstephens/learnnova/internal/config"
	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/storage"
	"github.com/julianstephens/learnnova/internal/store"
)

type Context struct {
	Provider storage.Provider
	Store    *store.Store
	Config   config.Config
	Location *time.Location

	// SettingsPath is the config.toml the settings were read from.
	SettingsPath string

	// Out receives command output; nil means stdout.
	Out io.Writer
	// In answers confirmation prompts; nil means stdin.
	In io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Confirm asks a yes/no question on In. Anything but "y" or "yes" is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Hydrate loads every store slice from the provider.
func (c *Context) Hydrate() error {
	if c.Store == nil {
		return errors.New("store is not configured")
	}
	if c.Store.Hydrated() {
		return nil
	}
	if err := c.Store.Hydrate(context.Background()); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return nil
}

// BackupManager returns the backup manager for the current storage file.
// Postgres and in-memory locations return backup.ErrUnsupported.
func (c *Context) BackupManager() (*backup.Manager, error) {
	return backup.NewManager(c.Provider.GetConfigPath())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
