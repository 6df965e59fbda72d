package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/K0NGR3SS/slrledger/internal/aws"
	"github.com/K0NGR3SS/slrledger/internal/config"
	"github.com/K0NGR3SS/slrledger/internal/storage"
	"github.com/K0NGR3SS/slrledger/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slrledger",
	Short: "slrledger maintains a systematic literature review ledger from GitHub issue forms",
	Long: `slrledger turns "Add SLR Entry" issue submissions into ledger rows.

It extracts the form answers, folds any "Other" values back into the
controlled vocabularies (assigning new fault-injection T-codes), appends the
entry to the ledger CSV, re-renders the README table and regenerates the
issue form when a vocabulary changed.

Runs are not locked: process one submission at a time.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: ./slrledger.yaml if present)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
}

// env is what every subcommand needs: validated config, the storage backend
// and a logger.
type env struct {
	cfg     *config.Config
	backend storage.Backend
	log     *pterm.Logger
}

func setup(ctx context.Context, cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	logJSON, _ := cmd.Flags().GetBool("log-json")

	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		backend: backend,
		log:     ui.NewLogger(os.Stderr, verbose, logJSON),
	}, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendS3:
		b, err := aws.NewS3Backend(ctx, cfg.Storage.Region, cfg.Storage.Bucket, cfg.Storage.Prefix)
		if err != nil {
			return nil, fmt.Errorf("error initializing S3 backend: %w", err)
		}
		return b, nil
	default:
		return storage.NewDir(cfg.Root), nil
	}
}
