package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Frequency is the interval at which a recurring transaction occurs.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiweekly  Frequency = "biweekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}

	return false
}

// NextDate returns the next occurrence after the given date.
//
// Monthly and longer frequencies use calendar arithmetic, so a monthly
// recurrence on the 31st moves along month ends the way time.AddDate does.
func (f Frequency) NextDate(t time.Time) time.Time {
	switch f {
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14)
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// RecurringTransaction is a confirmed recurring series, either created by
// the user directly or by confirming a detected pattern.
//
// It is deactivated instead of deleted so that references to it survive.
type RecurringTransaction struct {
	DefaultModel
	User        User      `json:"-"`
	UserID      uuid.UUID `gorm:"index"`
	Account     Account   `json:"-"`
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Type        TransactionType `gorm:"default:expense"`
	Frequency   Frequency
	NextDueDate time.Time
	Active      bool `gorm:"default:true"`
}

func (r *RecurringTransaction) BeforeSave(_ *gorm.DB) error {
	r.Description = strings.TrimSpace(r.Description)

	if r.NextDueDate.IsZero() {
		return ErrRecurringNextDueDateUnset
	}
	r.NextDueDate = r.NextDueDate.In(time.UTC)

	return nil
}

func (r *RecurringTransaction) BeforeCreate(tx *gorm.DB) error {
	_ = r.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecurringTransaction)
	return r.checkIntegrity(tx, *toSave)
}

func (r *RecurringTransaction) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(RecurringTransaction)

	if tx.Statement.Changed("AccountID") || tx.Statement.Changed("CategoryID") {
		if toSave.AccountID == uuid.Nil {
			toSave.AccountID = r.AccountID
		}
		if toSave.UserID == uuid.Nil {
			toSave.UserID = r.UserID
		}

		return r.checkIntegrity(tx, toSave)
	}

	return nil
}

func (r *RecurringTransaction) AfterSave(_ *gorm.DB) error {
	if !r.Amount.IsPositive() {
		return ErrAmountNotPositive
	}

	if !r.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	if !r.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	return nil
}

func (r *RecurringTransaction) checkIntegrity(tx *gorm.DB, toSave RecurringTransaction) error {
	err := tx.First(&Account{}, "id = ? AND user_id = ?", toSave.AccountID, toSave.UserID).Error
	if err != nil {
		return err
	}

	if toSave.CategoryID != nil {
		return checkCategoryAccess(tx, *toSave.CategoryID, toSave.UserID)
	}

	return nil
}
