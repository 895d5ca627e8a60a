package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// transactionsSum returns the sum of all transaction amounts of a user for
// one transaction type, optionally restricted to a category and a half-open
// [from, until) time range. A zero from or until skips that bound.
//
// Absent data sums to zero, not to an error.
func transactionsSum(db *gorm.DB, userID uuid.UUID, categoryID *uuid.UUID, transactionType TransactionType, from, until time.Time) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	q := db.Table("transactions").
		Where("user_id = ?", userID).
		Where("type = ?", transactionType).
		Where("deleted_at IS NULL")

	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}

	if !from.IsZero() {
		q = q.Where("datetime(date) >= datetime(?)", from)
	}

	if !until.IsZero() {
		q = q.Where("datetime(date) < datetime(?)", until)
	}

	err := q.Select("SUM(amount)").Row().Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s transactions failed: %w", transactionType, err)
	}

	return sum.Decimal, nil
}

// ExpenseSum returns the expense total for a user, optionally restricted to
// a category and time range.
func ExpenseSum(db *gorm.DB, userID uuid.UUID, categoryID *uuid.UUID, from, until time.Time) (decimal.Decimal, error) {
	return transactionsSum(db, userID, categoryID, TransactionTypeExpense, from, until)
}

// IncomeSum returns the income total for a user, optionally restricted to
// a category and time range.
func IncomeSum(db *gorm.DB, userID uuid.UUID, categoryID *uuid.UUID, from, until time.Time) (decimal.Decimal, error) {
	return transactionsSum(db, userID, categoryID, TransactionTypeIncome, from, until)
}
