package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings target to be reached by a specific month.
type Goal struct {
	DefaultModel
	User     User      `json:"-"`
	UserID   uuid.UUID `gorm:"uniqueIndex:goal_name_user"`
	Name     string    `gorm:"uniqueIndex:goal_name_user"`
	Note     string
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // The target for the goal
	Month    types.Month
	Archived bool
}

func (g *Goal) BeforeSave(_ *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)
	g.Note = strings.TrimSpace(g.Note)

	return nil
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	_ = g.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Goal)
	return tx.First(&User{}, "id = ?", toSave.UserID).Error
}

func (g *Goal) AfterSave(_ *gorm.DB) error {
	if !g.Amount.IsPositive() {
		return ErrGoalAmountNotPositive
	}

	return nil
}

// Saved returns the net sum of all transactions of the user up to the end of
// the goal's month. It is the amount that counts towards the goal.
func (g Goal) Saved(db *gorm.DB) (decimal.Decimal, error) {
	income, err := IncomeSum(db, g.UserID, nil, time.Time{}, g.Month.Next())
	if err != nil {
		return decimal.Zero, err
	}

	expenses, err := ExpenseSum(db, g.UserID, nil, time.Time{}, g.Month.Next())
	if err != nil {
		return decimal.Zero, err
	}

	return income.Sub(expenses), nil
}
