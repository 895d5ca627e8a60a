package models

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending limit for one category in one month.
type Budget struct {
	DefaultModel
	User       User      `json:"-"`
	UserID     uuid.UUID `gorm:"uniqueIndex:budget_user_category_month"`
	CategoryID uuid.UUID `gorm:"uniqueIndex:budget_user_category_month"`
	Month      types.Month `gorm:"uniqueIndex:budget_user_category_month"`
	Limit      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Active     bool            `gorm:"default:true"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Budget)
	return b.checkIntegrity(tx, *toSave)
}

func (b *Budget) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Budget)

	if tx.Statement.Changed("CategoryID") {
		if toSave.UserID == uuid.Nil {
			toSave.UserID = b.UserID
		}

		return b.checkIntegrity(tx, toSave)
	}

	return nil
}

// AfterSave rejects non-positive limits. Rows that predate this check are
// still skipped by the alert evaluator instead of crashing it.
func (b *Budget) AfterSave(_ *gorm.DB) error {
	if !b.Limit.IsPositive() {
		return ErrBudgetLimitNotPositive
	}

	return nil
}

// checkIntegrity verifies that the category is accessible to the user.
func (b *Budget) checkIntegrity(tx *gorm.DB, toSave Budget) error {
	return checkCategoryAccess(tx, toSave.CategoryID, toSave.UserID)
}

// Spending returns the sum of all expense transactions of the budget's user
// and category within the budget's month.
func (b Budget) Spending(db *gorm.DB) (decimal.Decimal, error) {
	return ExpenseSum(db, b.UserID, &b.CategoryID, b.Month.First(), b.Month.Next())
}
