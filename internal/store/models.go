package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// AccountRecord is the persisted form of a ledger account.
type AccountRecord struct {
	ID            int    `gorm:"primaryKey"`
	ClientID      string `gorm:"column:client_id;not null;index;uniqueIndex:idx_client_code"`
	Code          string `gorm:"column:code;not null;uniqueIndex:idx_client_code"`
	Name          string `gorm:"column:name;not null"`
	Type          string `gorm:"column:account_type;not null"`
	Subtype       string `gorm:"column:subtype"`
	IsSubledger   bool   `gorm:"column:is_subledger;not null"`
	SubledgerType string `gorm:"column:subledger_type"`
	ParentID      int    `gorm:"column:parent_id;index"`
	Active        bool   `gorm:"column:active;not null"`
	Description   string `gorm:"column:description"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (AccountRecord) TableName() string {
	return "accounts"
}

func (r AccountRecord) toModel() model.Account {
	return model.Account{
		ID:            r.ID,
		Code:          r.Code,
		Name:          r.Name,
		Type:          model.AccountType(r.Type),
		Subtype:       r.Subtype,
		IsSubledger:   r.IsSubledger,
		SubledgerType: r.SubledgerType,
		ParentID:      r.ParentID,
		Active:        r.Active,
		Description:   r.Description,
	}
}

// JournalEntry is one posting against an account. The transaction-history
// invariant (code and type frozen, hard delete blocked) derives from the
// presence of these rows.
type JournalEntry struct {
	ID          uint            `gorm:"primaryKey"`
	AccountID   int             `gorm:"column:account_id;not null;index"`
	Date        time.Time       `gorm:"column:entry_date;not null"`
	Description string          `gorm:"column:description"`
	Debit       decimal.Decimal `gorm:"column:debit;type:varchar(32);not null"`
	Credit      decimal.Decimal `gorm:"column:credit;type:varchar(32);not null"`
	Reference   string          `gorm:"column:reference"`
	CreatedAt   time.Time
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
