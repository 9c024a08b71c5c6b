package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/chart"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newTreeCommand() *cobra.Command {
	var dir string
	var verbose bool
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the account hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			roots, err := e.store.FetchAccountTree(cmd.Context(), e.cfg.Business.ClientID)
			if err != nil {
				return err
			}

			expanded := expandAll(roots)
			for _, fa := range chart.Flatten(roots, expanded) {
				if activeOnly && !fa.Active {
					continue
				}
				printAccount(cmd, fa.Account, fa.Depth)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "hide inactive accounts")

	return cmd
}

func newSearchCommand() *cobra.Command {
	var dir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search accounts by name, code, or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			roots, err := e.store.FetchAccountTree(cmd.Context(), e.cfg.Business.ClientID)
			if err != nil {
				return err
			}

			results := chart.Search(roots, args[0])
			if len(results) == 0 {
				cmd.Println("No accounts matched.")
				return nil
			}
			for _, a := range results {
				printAccount(cmd, a, 0)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	return cmd
}

func printAccount(cmd *cobra.Command, a model.Account, depth int) {
	marker := ""
	if !a.Active {
		marker = " (inactive)"
	}
	cmd.Printf("%s%s  %s [%s]%s\n", strings.Repeat("  ", depth), a.Code, a.Name, a.Type, marker)
}

func expandAll(roots []*chart.Node) map[int]bool {
	expanded := make(map[int]bool)
	var walk func(n *chart.Node)
	walk = func(n *chart.Node) {
		expanded[n.ID] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return expanded
}
