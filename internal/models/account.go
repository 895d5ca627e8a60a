package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType describes what kind of account an Account is.
type AccountType string

const (
	AccountTypeChecking   AccountType = "checking"
	AccountTypeSavings    AccountType = "savings"
	AccountTypeCash       AccountType = "cash"
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeInvestment AccountType = "investment"
)

// Account represents an account of a user, e.g. a bank account.
//
// The current balance is always derived from the initial balance and the
// transactions referencing the account, it is never stored.
type Account struct {
	DefaultModel
	User           User        `json:"-"`
	UserID         uuid.UUID   `gorm:"uniqueIndex:account_name_user"`
	Name           string      `gorm:"uniqueIndex:account_name_user"`
	Type           AccountType `gorm:"default:checking"`
	Note           string
	InitialBalance decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency       string          `gorm:"default:EUR"`
	Archived       bool
}

// BeforeSave trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)

	return nil
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return a.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (a *Account) checkIntegrity(tx *gorm.DB, toSave Account) error {
	return tx.First(&User{}, "id = ?", toSave.UserID).Error
}

// Balance calculates the balance of the account at a specific point in time,
// factoring in all transactions up to and including it.
func (a Account) Balance(db *gorm.DB, at time.Time) (decimal.Decimal, error) {
	var transactions []Transaction

	err := db.
		Where(&Transaction{AccountID: a.ID}).
		Where("datetime(transactions.date) <= datetime(?)", at).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	balance := a.InitialBalance
	for _, t := range transactions {
		if t.Type == TransactionTypeIncome {
			balance = balance.Add(t.Amount)
		} else {
			balance = balance.Sub(t.Amount)
		}
	}

	return balance, nil
}

// Transactions returns all transactions for this account.
func (a Account) Transactions(db *gorm.DB) []Transaction {
	var transactions []Transaction

	db.Where(&Transaction{AccountID: a.ID}).Find(&transactions)
	return transactions
}
