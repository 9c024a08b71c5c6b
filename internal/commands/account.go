package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/errs"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/store"
)

func newCreateCommand() *cobra.Command {
	var dir string
	var verbose bool
	var req store.CreateAccountRequest
	var typeName string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			accountType, err := model.ParseAccountType(typeName)
			if err != nil {
				return err
			}
			req.ClientID = e.cfg.Business.ClientID
			req.Type = accountType

			account, err := e.store.CreateAccount(cmd.Context(), req)
			if err != nil {
				return err
			}

			e.audit("create", fmt.Sprintf("code=%s name=%q", account.Code, account.Name), "")
			cmd.Printf("Created account %s %s (id %d)\n", account.Code, account.Name, account.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().StringVar(&req.Name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&typeName, "type", "", "account type: asset, liability, equity, revenue, expense (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&req.Subtype, "subtype", "", "account subtype")
	cmd.Flags().StringVar(&req.Code, "code", "", "account code (allocated when empty)")
	cmd.Flags().IntVar(&req.ParentID, "parent", 0, "parent account id")
	cmd.Flags().BoolVar(&req.IsSubledger, "subledger", false, "account is a subledger control account")
	cmd.Flags().StringVar(&req.SubledgerType, "subledger-type", "", "subledger type (required with --subledger)")
	cmd.Flags().StringVar(&req.Description, "description", "", "account description")

	return cmd
}

func newUpdateCommand() *cobra.Command {
	var dir string
	var verbose bool
	var name, typeName, subtype, code, subledgerType, description string
	var parentID int
	var subledger, active bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %q", args[0])
			}

			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			var patch model.AccountPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("type") {
				accountType, err := model.ParseAccountType(typeName)
				if err != nil {
					return err
				}
				patch.Type = &accountType
			}
			if flags.Changed("subtype") {
				patch.Subtype = &subtype
			}
			if flags.Changed("code") {
				patch.Code = &code
			}
			if flags.Changed("parent") {
				patch.ParentID = &parentID
			}
			if flags.Changed("subledger") {
				patch.IsSubledger = &subledger
			}
			if flags.Changed("subledger-type") {
				patch.SubledgerType = &subledgerType
			}
			if flags.Changed("active") {
				patch.Active = &active
			}
			if flags.Changed("description") {
				patch.Description = &description
			}
			if patch.IsEmpty() {
				return errors.New("no changes given")
			}

			account, err := e.store.UpdateAccount(cmd.Context(), e.cfg.Business.ClientID, accountID, patch)
			if err != nil {
				return err
			}

			e.audit("update", fmt.Sprintf("id=%d code=%s", account.ID, account.Code), "")
			cmd.Printf("Updated account %s %s\n", account.Code, account.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().StringVar(&name, "name", "", "account name")
	cmd.Flags().StringVar(&typeName, "type", "", "account type")
	cmd.Flags().StringVar(&subtype, "subtype", "", "account subtype")
	cmd.Flags().StringVar(&code, "code", "", "account code")
	cmd.Flags().IntVar(&parentID, "parent", 0, "parent account id (0 clears the parent)")
	cmd.Flags().BoolVar(&subledger, "subledger", false, "account is a subledger control account")
	cmd.Flags().StringVar(&subledgerType, "subledger-type", "", "subledger type")
	cmd.Flags().BoolVar(&active, "active", true, "account is active")
	cmd.Flags().StringVar(&description, "description", "", "account description")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	var dir string
	var verbose bool
	var deactivate bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid account id %q", args[0])
			}

			e, err := openEnv(dir, verbose)
			if err != nil {
				return err
			}
			defer e.close()

			clientID := e.cfg.Business.ClientID
			err = e.store.DeleteAccount(cmd.Context(), clientID, accountID)
			var conflict *errs.ConflictError
			if errors.As(err, &conflict) && conflict.CanDeactivate {
				if !deactivate {
					return fmt.Errorf("%w; rerun with --deactivate to mark it inactive instead", err)
				}
				if err := e.store.DeactivateAccount(cmd.Context(), clientID, accountID); err != nil {
					return err
				}
				e.audit("deactivate", fmt.Sprintf("id=%d", accountID), "")
				cmd.Printf("Account %d has transaction history; marked inactive instead of deleted\n", accountID)
				return nil
			}
			if err != nil {
				return err
			}

			e.audit("delete", fmt.Sprintf("id=%d", accountID), "")
			cmd.Printf("Deleted account %d\n", accountID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.Flags().BoolVar(&deactivate, "deactivate", false, "deactivate instead when delete is blocked by history")

	return cmd
}
