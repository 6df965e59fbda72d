package commands

import (
	"context"
	"errors"
	"time"

	"github.com/K0NGR3SS/slrledger/internal/curator"
	"github.com/K0NGR3SS/slrledger/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// ErrFormStale is returned by form --check when the committed form differs.
var ErrFormStale = errors.New("issue form is out of date")

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Regenerate the issue form from the vocabularies",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		e, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		c := curator.New(curator.Options{Backend: e.backend, Config: e.cfg, Logger: e.log})

		check, _ := cmd.Flags().GetBool("check")
		if check {
			diff, err := c.CheckForm(ctx)
			if err != nil {
				return err
			}
			if diff != "" {
				ui.PrintDiff(diff)
				return ErrFormStale
			}
			pterm.Success.Printf("Issue form is up to date: %s\n", e.cfg.Paths.Form)
			return nil
		}

		changed, err := c.WriteForm(ctx)
		if err != nil {
			return err
		}
		if changed {
			pterm.Success.Printf("Issue form generated: %s\n", e.cfg.Paths.Form)
		} else {
			pterm.Info.Printf("Issue form unchanged: %s\n", e.cfg.Paths.Form)
		}
		return nil
	},
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Re-render the README table from the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		e, err := setup(ctx, cmd)
		if err != nil {
			return err
		}
		c := curator.New(curator.Options{Backend: e.backend, Config: e.cfg, Logger: e.log})
		if err := c.Render(ctx); err != nil {
			return err
		}
		pterm.Success.Printf("README table rendered: %s\n", e.cfg.Paths.Readme)
		return nil
	},
}

func init() {
	formCmd.Flags().Bool("check", false, "Fail with a diff if the committed form is stale")
	rootCmd.AddCommand(formCmd)
	rootCmd.AddCommand(renderCmd)
}
