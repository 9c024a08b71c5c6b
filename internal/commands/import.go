package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/chart"
	"github.com/ledgerline-dev/ledgerline/internal/errs"
	"github.com/ledgerline-dev/ledgerline/internal/importer"
	"github.com/ledgerline-dev/ledgerline/internal/reconcile"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func newImportCommand() *cobra.Command {
	var dir string
	var verbose bool
	var apply bool
	var all bool
	var addCodes, updateCodes, removeCodes, purgeCodes []string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Preview a chart import, optionally applying approved changes",
		Long: `Import parses a CSV or XLSX chart file and previews it against the live
chart as additions, modifications, and removals. Nothing is written unless
--apply is given together with an explicit selection (--add, --update,
--remove, --purge, or --all). Removals deactivate by default; --purge
deletes them outright where transaction history allows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			return runImport(cmd, e, args[0], importOptions{
				apply:       apply,
				all:         all,
				addCodes:    addCodes,
				updateCodes: updateCodes,
				removeCodes: removeCodes,
				purgeCodes:  purgeCodes,
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().BoolVar(&apply, "apply", false, "apply the selected changes")
	cmd.Flags().BoolVar(&all, "all", false, "select every addition, modification, and removal")
	cmd.Flags().StringSliceVar(&addCodes, "add", nil, "addition codes to apply")
	cmd.Flags().StringSliceVar(&updateCodes, "update", nil, "modification codes to apply")
	cmd.Flags().StringSliceVar(&removeCodes, "remove", nil, "removal codes to deactivate")
	cmd.Flags().StringSliceVar(&purgeCodes, "purge", nil, "removal codes to delete outright")

	return cmd
}

type importOptions struct {
	apply       bool
	all         bool
	addCodes    []string
	updateCodes []string
	removeCodes []string
	purgeCodes  []string
}

func runImport(cmd *cobra.Command, e *env, file string, opts importOptions) error {
	roots, err := e.store.FetchAccountTree(cmd.Context(), e.cfg.Business.ClientID)
	if err != nil {
		return err
	}
	existing := chart.FlattenAll(roots)

	candidates, err := importer.ParseFile(file, chart.CodeIndex(existing))
	if err != nil {
		return fmt.Errorf("import rejected: %w", err)
	}

	cs := reconcile.Diff(candidates, existing)
	printChangeSet(cmd, cs)

	if !opts.apply {
		return nil
	}
	if cs.Empty() {
		cmd.Println("Nothing to apply.")
		return nil
	}

	session := reconcile.NewSession(cs)
	selectChanges(session, cs, opts, e.cfg.Import.DefaultDisposition)

	payload, err := session.BuildApplyPayload()
	if errors.Is(err, errs.ErrNoSelection) {
		return errors.New("nothing selected: pass --all or one of --add, --update, --remove, --purge")
	}
	if err != nil {
		return err
	}

	result, err := e.store.BulkApply(cmd.Context(), e.cfg.Business.ClientID, payload)
	if err != nil {
		return err
	}

	e.audit("import-apply", applySummary(result), payload.SessionID)
	printApplyResult(cmd, result)
	return nil
}

func selectChanges(session *reconcile.ImportSession, cs reconcile.ChangeSet, opts importOptions, defaultDisposition string) {
	if opts.all {
		for _, add := range cs.Additions {
			session.SelectAddition(add.Code)
		}
		for _, mod := range cs.Modifications {
			session.SelectModification(mod.Original.Code)
		}
		for _, rem := range cs.Removals {
			session.SelectRemoval(rem.Code)
		}
	}
	for _, code := range opts.addCodes {
		session.SelectAddition(code)
	}
	for _, code := range opts.updateCodes {
		session.SelectModification(code)
	}
	for _, code := range opts.removeCodes {
		session.SelectRemoval(code)
	}
	if defaultDisposition == string(reconcile.DispositionDelete) {
		for _, rem := range cs.Removals {
			session.SetDisposition(rem.Code, reconcile.DispositionDelete)
		}
	}
	for _, code := range opts.purgeCodes {
		session.SelectRemoval(code)
		session.SetDisposition(code, reconcile.DispositionDelete)
	}
}

func printChangeSet(cmd *cobra.Command, cs reconcile.ChangeSet) {
	if cs.Empty() {
		cmd.Printf("Chart is up to date (%d unchanged)\n", cs.Unchanged)
		return
	}

	if len(cs.Additions) > 0 {
		cmd.Printf("Additions (%d):\n", len(cs.Additions))
		for _, add := range cs.Additions {
			cmd.Printf("  + %s  %s [%s]\n", add.Code, add.Name, add.Type)
		}
	}
	if len(cs.Modifications) > 0 {
		cmd.Printf("Modifications (%d):\n", len(cs.Modifications))
		for _, mod := range cs.Modifications {
			cmd.Printf("  ~ %s  %s\n", mod.Original.Code, mod.Original.Name)
			for _, delta := range mod.Deltas {
				cmd.Printf("      %s\n", delta)
			}
		}
	}
	if len(cs.Removals) > 0 {
		cmd.Printf("Removals (%d):\n", len(cs.Removals))
		for _, rem := range cs.Removals {
			cmd.Printf("  - %s  %s\n", rem.Code, rem.Name)
		}
	}
	cmd.Printf("Unchanged: %d\n", cs.Unchanged)
}

func printApplyResult(cmd *cobra.Command, result store.ApplyResult) {
	cmd.Println(applySummary(result))
	for _, w := range result.Warnings {
		cmd.Printf("warning: %s\n", w)
	}
}

func applySummary(result store.ApplyResult) string {
	return fmt.Sprintf("added=%d updated=%d reactivated=%d inactive=%d deleted=%d skipped=%d",
		result.Added, result.Updated, result.Reactivated, result.Deactivated, result.Deleted, result.Skipped)
}
