package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType describes the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single movement of money on an account.
//
// The amount is always positive, the Type determines whether money comes in
// or goes out.
type Transaction struct {
	DefaultModel
	User            User      `json:"-"`
	UserID          uuid.UUID `gorm:"index"`
	Account         Account   `json:"-"`
	AccountID       uuid.UUID `gorm:"index"`
	CategoryID      *uuid.UUID
	Date            time.Time
	Description     string
	Amount          decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type            TransactionType `gorm:"default:expense"`
	Currency        string
	ReferenceNumber string
	ImportHash      string // A SHA256 hash of the raw imported record, used for duplicate detection
}

// BeforeSave sets the timezone of the date to UTC and trims whitespace.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Description = strings.TrimSpace(t.Description)
	t.ReferenceNumber = strings.TrimSpace(t.ReferenceNumber)
	t.ImportHash = strings.TrimSpace(t.ImportHash)

	return nil
}

// AfterFind normalizes the date to UTC. See DefaultModel.AfterFind.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)

	t.Date = t.Date.In(time.UTC)
	return nil
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Transaction)
	return t.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the referenced resources when they change.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Transaction)

	if tx.Statement.Changed("AccountID") || tx.Statement.Changed("CategoryID") {
		if toSave.AccountID == uuid.Nil {
			toSave.AccountID = t.AccountID
		}
		if toSave.UserID == uuid.Nil {
			toSave.UserID = t.UserID
		}

		return t.checkIntegrity(tx, toSave)
	}

	return nil
}

// AfterSave enforces valid amounts and types.
func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

// checkIntegrity verifies that the account belongs to the same user and that
// the category, if set, is accessible to the user. A raw foreign key from
// user input is never trusted without this check.
func (t *Transaction) checkIntegrity(tx *gorm.DB, toSave Transaction) error {
	err := tx.First(&Account{}, "id = ? AND user_id = ?", toSave.AccountID, toSave.UserID).Error
	if err != nil {
		return err
	}

	if toSave.CategoryID != nil {
		return checkCategoryAccess(tx, *toSave.CategoryID, toSave.UserID)
	}

	return nil
}
