// Package seedcmd implements the `portfolio seed` command.
package seedcmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"portfolio.site/cmd/portfolio/shared"
	"portfolio.site/internal/models"
	"portfolio.site/internal/store"
)

// Command implements `portfolio seed`.
type Command struct {
	ctx   *shared.Context
	cmd   *cobra.Command
	force bool
}

// New creates the seed command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "seed",
		Short: "Write the default content document to the content file",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	c.cmd.Flags().BoolVar(&c.force, "force", false, "Overwrite an existing content file")
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	cfg, err := c.ctx.LoadConfig()
	if err != nil {
		return err
	}

	if !c.force {
		_, err := os.Stat(cfg.ContentPath)
		if err == nil {
			return fmt.Errorf("seed: %s already exists (use --force to overwrite)", cfg.ContentPath)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("seed: %w", err)
		}
	}

	content := models.DefaultContent()
	if err := store.NewFileStore(cfg.ContentPath).Save(content); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%d projects)\n", cfg.ContentPath, len(content.Document().Projects))
	return nil
}
