package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerline-dev/ledgerline/internal/chart"
	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var clientID string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Ledgerline workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name, clientID)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&clientID, "client-id", "default", "client identifier")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name, clientID string) error {
	cfg := config.Default(name, clientID)

	dirs := []string{
		cfg.Audit.Dir,
		"exports",
		"import",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, "ledgerline.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Open the database and seed the sample chart.
	st, err := store.Open(filepath.Join(dir, cfg.Database.Path), zap.NewNop())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Seed(cmd.Context(), clientID, chart.SampleChart()); err != nil {
		return fmt.Errorf("seeding chart of accounts: %w", err)
	}

	cmd.Printf("Initialized Ledgerline workspace at %s\n", dir)
	return nil
}
