package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/persistence"
	"github.com/julianstephens/boardprep/internal/progress"
)

type InitCmd struct {
	Force  bool   `help:"Delete an existing data file, or overwrite the stored document, before initializing."`
	Source string `help:"Copy the document and theme from another store (path or connection string)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized boardprep storage at: %s\n", ctx.Store.GetConfigPath())

	adapter := persistence.New(ctx.Store)
	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(adapter, c.Source); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		fmt.Println("Copy completed successfully!")
		return nil
	}

	_, found, err := adapter.Raw()
	if err != nil {
		return err
	}
	if found && !c.Force {
		fmt.Println("Existing progress kept. Use --force to start over.")
		return nil
	}
	if err := adapter.Save(progress.NewDocument(ctx.Now(), ctx.Seed.Subjects)); err != nil {
		return err
	}
	fmt.Printf("Wrote a fresh plan with %d subjects. Run 'boardprep start' when you are ready.\n", len(ctx.Seed.Subjects))
	return nil
}

// removeExisting deletes a file-backed store. Other stores keep their data
// and the document is overwritten after Init.
func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if !filepath.IsAbs(path) {
		return nil
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == path {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		fmt.Printf("Deleted existing data at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}

func (c *InitCmd) copyFrom(dst *persistence.Adapter, source string) error {
	src, err := cli.OpenStore(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	doc, found, err := src.Read(constants.StorageKey)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("source store has no document")
	}
	fmt.Println("  Copying document...")
	if err := dst.WriteRaw(doc); err != nil {
		return fmt.Errorf("source document is invalid: %w", err)
	}

	theme, err := persistence.New(src).Theme()
	if err != nil {
		return err
	}
	fmt.Printf("  Copying theme (%s)...\n", theme)
	return dst.SetTheme(theme)
}
