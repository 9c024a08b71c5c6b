// Package store is the persistence collaborator behind the chart engine:
// the live account hierarchy, the transaction-history check, and the apply
// paths for both direct edits and approved imports.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ledgerline-dev/ledgerline/internal/chart"
	"github.com/ledgerline-dev/ledgerline/internal/errs"
	"github.com/ledgerline-dev/ledgerline/internal/guard"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

var validate = validator.New()

// Store wraps the sqlite database holding accounts and journal entries.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open opens (or creates) the database at path and migrates the schema.
// An empty path opens an in-memory database.
func Open(path string, log *zap.Logger) (*Store, error) {
	if path == "" {
		path = "file::memory:?cache=shared"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(&AccountRecord{}, &JournalEntry{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Seed inserts accounts for a client. Used by init to load the sample chart.
func (s *Store) Seed(ctx context.Context, clientID string, accounts []model.Account) error {
	for _, a := range accounts {
		rec := AccountRecord{
			ID:            a.ID,
			ClientID:      clientID,
			Code:          a.Code,
			Name:          a.Name,
			Type:          string(a.Type),
			Subtype:       a.Subtype,
			IsSubledger:   a.IsSubledger,
			SubledgerType: a.SubledgerType,
			ParentID:      a.ParentID,
			Active:        a.Active,
			Description:   a.Description,
		}
		if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
			return fmt.Errorf("seeding account %s: %w", a.Code, err)
		}
	}
	return nil
}

// FetchAccounts returns a client's full flat account set, active and
// inactive, ordered by id.
func (s *Store) FetchAccounts(ctx context.Context, clientID string) ([]model.Account, error) {
	var recs []AccountRecord
	if err := s.db.WithContext(ctx).Where("client_id = ?", clientID).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}
	accounts := make([]model.Account, len(recs))
	for i, r := range recs {
		accounts[i] = r.toModel()
	}
	return accounts, nil
}

// FetchAccountTree is the read path for the live hierarchy.
func (s *Store) FetchAccountTree(ctx context.Context, clientID string) ([]*chart.Node, error) {
	accounts, err := s.FetchAccounts(ctx, clientID)
	if err != nil {
		return nil, err
	}
	roots, orphans := chart.Build(accounts)
	if len(orphans) > 0 {
		s.log.Warn("accounts with unresolvable parents treated as roots",
			zap.String("client", clientID),
			zap.Ints("account_ids", orphans))
	}
	return roots, nil
}

// CheckHasTransactions reports whether an account has any journal postings.
func (s *Store) CheckHasTransactions(ctx context.Context, accountID int) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&JournalEntry{}).
		Where("account_id = ?", accountID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("counting journal entries: %w", err)
	}
	return count > 0, nil
}

// AddJournalEntry records a posting against an account.
func (s *Store) AddJournalEntry(ctx context.Context, entry JournalEntry) error {
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("recording journal entry: %w", err)
	}
	return nil
}

// CreateAccountRequest carries the explicit account-creation path. An empty
// Code is allocated from the (type, subtype) bucket; a manual Code is
// clamped to keep the bucket prefix intact.
type CreateAccountRequest struct {
	ClientID      string            `validate:"required"`
	Code          string
	Name          string            `validate:"required"`
	Type          model.AccountType `validate:"required,oneof=asset liability equity revenue expense"`
	Subtype       string
	IsSubledger   bool
	SubledgerType string            `validate:"required_if=IsSubledger true"`
	ParentID      int
	Description   string
}

// CreateAccount creates a new active account. Code assignment happens here
// and only here; later edits never re-allocate.
func (s *Store) CreateAccount(ctx context.Context, req CreateAccountRequest) (model.Account, error) {
	if err := validate.Struct(req); err != nil {
		return model.Account{}, fmt.Errorf("invalid create request: %w", err)
	}

	existing, err := s.FetchAccounts(ctx, req.ClientID)
	if err != nil {
		return model.Account{}, err
	}

	code := req.Code
	if code == "" {
		code = chart.NextCode(req.Type, req.Subtype, existing)
	} else {
		code = chart.ClampCode(req.Type, req.Subtype, code)
	}
	if findByCode(existing, code) != nil {
		return model.Account{}, fmt.Errorf("code %s already exists", code)
	}

	if req.ParentID != 0 {
		parent := findByID(existing, req.ParentID)
		if parent == nil {
			return model.Account{}, fmt.Errorf("parent account %d not found", req.ParentID)
		}
	}

	rec := AccountRecord{
		ClientID:      req.ClientID,
		Code:          code,
		Name:          req.Name,
		Type:          string(req.Type),
		Subtype:       req.Subtype,
		IsSubledger:   req.IsSubledger,
		SubledgerType: req.SubledgerType,
		ParentID:      req.ParentID,
		Active:        true,
		Description:   req.Description,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.Account{}, fmt.Errorf("creating account: %w", err)
	}
	s.log.Info("account created", zap.String("client", req.ClientID), zap.String("code", code))
	return rec.toModel(), nil
}

// UpdateAccount applies a guard-sanitized patch to an account. A failed
// history check degrades to the safe assumption that the account has
// transactions; it never blocks the update.
func (s *Store) UpdateAccount(ctx context.Context, clientID string, accountID int, patch model.AccountPatch) (model.Account, error) {
	rec, err := s.loadAccount(ctx, clientID, accountID)
	if err != nil {
		return model.Account{}, err
	}
	original := rec.toModel()

	existing, err := s.FetchAccounts(ctx, clientID)
	if err != nil {
		return model.Account{}, err
	}

	if patch.ParentID != nil && *patch.ParentID != 0 {
		if findByID(existing, *patch.ParentID) == nil {
			return model.Account{}, fmt.Errorf("parent account %d not found", *patch.ParentID)
		}
		if chart.WouldCycle(existing, accountID, *patch.ParentID) {
			return model.Account{}, &errs.CycleError{AccountID: accountID, ParentID: *patch.ParentID}
		}
	}

	sanitized, hasTransactions, checkErr := guard.PrepareUpdate(ctx, s, original, patch)
	if checkErr != nil {
		s.log.Warn("transaction check failed, assuming restricted fields are frozen",
			zap.Int("account_id", accountID), zap.Error(checkErr))
	}
	if sanitized.IsEmpty() {
		return original, nil
	}

	if sanitized.Code != nil {
		if other := findByCode(existing, *sanitized.Code); other != nil && other.ID != accountID {
			return model.Account{}, fmt.Errorf("code %s already exists", *sanitized.Code)
		}
	}

	updated := sanitized.Apply(original)
	rec.Code = updated.Code
	rec.Name = updated.Name
	rec.Type = string(updated.Type)
	rec.Subtype = updated.Subtype
	rec.IsSubledger = updated.IsSubledger
	rec.SubledgerType = updated.SubledgerType
	rec.ParentID = updated.ParentID
	rec.Active = updated.Active
	rec.Description = updated.Description

	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return model.Account{}, fmt.Errorf("updating account: %w", err)
	}
	s.log.Info("account updated",
		zap.String("client", clientID),
		zap.Int("account_id", accountID),
		zap.Bool("has_transactions", hasTransactions))
	return rec.toModel(), nil
}

// DeleteAccount hard-deletes an account. When the account has postings it
// returns a *errs.ConflictError with CanDeactivate set so callers can offer
// deactivation instead.
func (s *Store) DeleteAccount(ctx context.Context, clientID string, accountID int) error {
	if _, err := s.loadAccount(ctx, clientID, accountID); err != nil {
		return err
	}

	hasTransactions, err := s.CheckHasTransactions(ctx, accountID)
	if err != nil {
		// Same safe fallback as updates: an unverifiable history blocks
		// the destructive path.
		s.log.Warn("transaction check failed, refusing hard delete",
			zap.Int("account_id", accountID), zap.Error(err))
		hasTransactions = true
	}
	if hasTransactions {
		return &errs.ConflictError{AccountID: accountID, CanDeactivate: true}
	}

	if err := s.db.WithContext(ctx).Delete(&AccountRecord{}, accountID).Error; err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}
	s.log.Info("account deleted", zap.String("client", clientID), zap.Int("account_id", accountID))
	return nil
}

// DeactivateAccount marks an account inactive, keeping its code reserved.
func (s *Store) DeactivateAccount(ctx context.Context, clientID string, accountID int) error {
	rec, err := s.loadAccount(ctx, clientID, accountID)
	if err != nil {
		return err
	}
	rec.Active = false
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return fmt.Errorf("deactivating account: %w", err)
	}
	return nil
}

func (s *Store) loadAccount(ctx context.Context, clientID string, accountID int) (AccountRecord, error) {
	var rec AccountRecord
	err := s.db.WithContext(ctx).Where("client_id = ? AND id = ?", clientID, accountID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, fmt.Errorf("account %d not found", accountID)
	}
	if err != nil {
		return rec, fmt.Errorf("loading account %d: %w", accountID, err)
	}
	return rec, nil
}

func findByCode(accounts []model.Account, code string) *model.Account {
	for i := range accounts {
		if strings.EqualFold(accounts[i].Code, code) {
			return &accounts[i]
		}
	}
	return nil
}

func findByID(accounts []model.Account, id int) *model.Account {
	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i]
		}
	}
	return nil
}
