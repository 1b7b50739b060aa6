// Package hashpwcmd implements the `portfolio hash-password` command.
package hashpwcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio.site/internal/auth"
)

// Command implements `portfolio hash-password`.
type Command struct {
	cmd *cobra.Command
}

// New creates the hash-password command.
func New() *Command {
	c := &Command{}
	c.cmd = &cobra.Command{
		Use:   "hash-password <username> <password>",
		Short: "Print a credentials file for CREDENTIALS_PATH",
		Args:  cobra.ExactArgs(2),
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	data, err := auth.HashCredentials(args[0], args[1])
	if err != nil {
		return fmt.Errorf("hash-password: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
