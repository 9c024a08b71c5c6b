package commands

import (
	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/export"
)

func newExportCommand() *cobra.Command {
	var dir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the chart of accounts to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			accounts, err := e.store.FetchAccounts(cmd.Context(), e.cfg.Business.ClientID)
			if err != nil {
				return err
			}
			if err := export.WriteChart(args[0], accounts); err != nil {
				return err
			}

			cmd.Printf("Exported %d accounts to %s\n", len(accounts), args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}

func newTemplateCommand() *cobra.Command {
	var dir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "template <file>",
		Short: "Write an import template seeded from the live chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			accounts, err := e.store.FetchAccounts(cmd.Context(), e.cfg.Business.ClientID)
			if err != nil {
				return err
			}
			if err := export.WriteTemplate(args[0], accounts); err != nil {
				return err
			}

			cmd.Printf("Wrote import template to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}
