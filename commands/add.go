package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/K0NGR3SS/slrledger/internal/config"
	"github.com/K0NGR3SS/slrledger/internal/curator"
	"github.com/K0NGR3SS/slrledger/internal/github"
	"github.com/K0NGR3SS/slrledger/internal/notifications"
	"github.com/K0NGR3SS/slrledger/internal/storage"
	"github.com/K0NGR3SS/slrledger/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// BodyEnv carries the issue body when the workflow passes it inline.
const BodyEnv = "ISSUE_BODY"

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one issue-form submission to the ledger",
	Long: `Parses an "Add SLR Entry" issue body and appends it to the ledger.

The body is read from --body-file, else from issue --issue via the gh CLI,
else from $ISSUE_BODY, else from the configured issue_body_file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		e, err := setup(ctx, cmd)
		if err != nil {
			return err
		}

		bodyFile, _ := cmd.Flags().GetString("body-file")
		issue, _ := cmd.Flags().GetInt("issue")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		body, err := resolveBody(ctx, e.cfg, bodyFile, issue, github.NewClient(e.cfg.Root))
		if err != nil {
			return err
		}

		backend := e.backend
		var notifier curator.Notifier
		if dryRun {
			backend = storage.NewOverlay(e.backend)
		} else if e.cfg.Notify.Slack.WebhookURL != "" {
			notifier = notifications.NewSlackNotifier(e.cfg.Notify.Slack.WebhookURL, e.cfg.Notify.Slack.Channel)
		}

		c := curator.New(curator.Options{
			Backend:  backend,
			Config:   e.cfg,
			Logger:   e.log,
			Notifier: notifier,
		})

		res, err := c.Add(ctx, body)
		if res != nil {
			ui.PrintEntry(res.Entry)
			ui.PrintVocabularyChanges(res.Added, res.Changed)
		}
		if err != nil {
			return err
		}

		if dryRun {
			pterm.Info.Printf("Dry run: %d file(s) would be written, nothing was changed.\n", len(backend.(*storage.Overlay).Layer.Writes))
			return nil
		}
		pterm.Success.Printf("Entry added. Ledger now holds %d studies.\n", res.Rows)
		if res.FormRegenerated {
			pterm.Success.Printf("Issue form regenerated: %s\n", e.cfg.Paths.Form)
		}
		return nil
	},
}

// issueViewer is the part of the gh client add needs.
type issueViewer interface {
	ViewIssue(ctx context.Context, number int) (*github.Issue, error)
}

func resolveBody(ctx context.Context, cfg *config.Config, bodyFile string, issue int, gh issueViewer) (string, error) {
	if bodyFile != "" {
		data, err := os.ReadFile(bodyFile)
		if err != nil {
			return "", fmt.Errorf("failed to read issue body: %w", err)
		}
		return string(data), nil
	}

	if issue > 0 {
		is, err := gh.ViewIssue(ctx, issue)
		if err != nil {
			return "", err
		}
		if len(cfg.Form.Labels) > 0 && !is.HasLabel(cfg.Form.Labels[0]) {
			pterm.Warning.Printf("Issue #%d is not labelled %q\n", is.Number, cfg.Form.Labels[0])
		}
		return is.Body, nil
	}

	if body := os.Getenv(BodyEnv); body != "" {
		return body, nil
	}

	path := filepath.Join(cfg.Root, cfg.Paths.IssueBodyFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("no issue body: set --body-file, --issue or $%s, or create %s", BodyEnv, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read issue body: %w", err)
	}
	return string(data), nil
}

func init() {
	addCmd.Flags().String("body-file", "", "Read the issue body from this file")
	addCmd.Flags().Int("issue", 0, "Fetch the body of this issue number with gh")
	addCmd.Flags().Bool("dry-run", false, "Show the resulting entry without writing anything")
	rootCmd.AddCommand(addCmd)
}
