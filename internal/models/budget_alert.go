package models

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertStatus is the lifecycle state of a budget alert.
//
// Alerts start as active and can move to acknowledged or dismissed exactly
// once, both states are terminal.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusDismissed    AlertStatus = "dismissed"
)

func (s AlertStatus) Valid() bool {
	return s == AlertStatusActive || s == AlertStatusAcknowledged || s == AlertStatusDismissed
}

// BudgetAlert records that the spending for a budget crossed a threshold
// tier within a period. Alerts are generated, never user-authored.
type BudgetAlert struct {
	DefaultModel
	User             User      `json:"-"`
	UserID           uuid.UUID `gorm:"index"`
	Budget           Budget    `json:"-"`
	BudgetID         uuid.UUID `gorm:"uniqueIndex:alert_budget_threshold_period"`
	ThresholdPercent int64     `gorm:"uniqueIndex:alert_budget_threshold_period"`
	Period           types.Month `gorm:"uniqueIndex:alert_budget_threshold_period"`
	SpentAmount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Spending at the time the alert was created
	LimitAmount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Budget limit at the time the alert was created
	Status           AlertStatus     `gorm:"default:active"`
}

func (a *BudgetAlert) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if a.ThresholdPercent <= 0 {
		return ErrAlertThresholdInvalid
	}

	toSave := tx.Statement.Dest.(*BudgetAlert)
	return tx.First(&Budget{}, "id = ? AND user_id = ?", toSave.BudgetID, toSave.UserID).Error
}

// Transition moves the alert to a terminal status. Only active alerts can
// transition.
func (a *BudgetAlert) Transition(db *gorm.DB, to AlertStatus) error {
	if a.Status != AlertStatusActive || !to.Valid() || to == AlertStatusActive {
		return ErrAlertTransitionInvalid
	}

	return db.Model(a).Update("status", to).Error
}
