package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Name   string `help:"Display name shown in groups and share links."`
	Source string `help:"Store path or connection string to copy documents from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Provider.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying documents from: %s\n", c.Source)
		n, err := c.copyDocuments(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("  Copied %d document(s)\n", n)
	}

	if c.Name != "" {
		if err := ctx.Store.SetDisplayName(c.Name); err != nil {
			return err
		}
		ctx.Printf("Display name set to %s\n", ctx.Store.DisplayName())
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if !storage.IsFileBacked(ctx.Provider) {
		return errors.New("--force only applies to file-backed stores")
	}
	path := ctx.Provider.GetConfigPath()
	if c.Source != "" {
		absPath, err := filepath.Abs(path)
		if err == nil {
			path = absPath
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		// Close first so SQLite releases its lock on the file.
		if err := ctx.Provider.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		ctx.Printf("Deleted existing store at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

// copyDocuments copies every document from the source store verbatim.
func (c *InitCmd) copyDocuments(ctx *cli.Context) (int, error) {
	source, err := storage.NewProvider(c.Source, false)
	if err != nil {
		return 0, err
	}
	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	keys, err := source.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source documents: %w", err)
	}
	for _, key := range keys {
		raw, err := source.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := ctx.Provider.Put(key, raw); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}
