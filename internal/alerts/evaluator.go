// Package alerts evaluates budgets against their spending and manages the
// lifecycle of the resulting alerts.
package alerts

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Thresholds are the alert tiers in percent, ascending. Only the highest
// tier a budget's spending has crossed produces a new alert.
var Thresholds = []int64{50, 75, 90, 100}

// Result is the outcome of one evaluation run.
type Result struct {
	Created []models.BudgetAlert // Newly created alerts
	Errors  []error              // Per-budget failures, the run continues past them
}

// Generate evaluates all active budgets of the user for the given month and
// creates alerts for newly crossed thresholds.
//
// The run is idempotent: a threshold that already has an alert for the
// period does not produce another one, regardless of the existing alert's
// status. Budgets with a non-positive limit are reported as errors and
// skipped.
func Generate(db *gorm.DB, userID uuid.UUID, month types.Month) Result {
	var result Result

	var budgets []models.Budget
	err := db.
		Where("user_id = ?", userID).
		Where("active = ?", true).
		Where("month = ?", month).
		Find(&budgets).Error
	if err != nil {
		result.Errors = append(result.Errors, err)
		return result
	}

	for i := range budgets {
		alert, err := evaluate(db, &budgets[i])
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		if alert != nil {
			result.Created = append(result.Created, *alert)
		}
	}

	return result
}

// evaluate checks one budget and returns the new alert, nil when no new
// threshold was crossed.
func evaluate(db *gorm.DB, budget *models.Budget) (*models.BudgetAlert, error) {
	if !budget.Limit.IsPositive() {
		return nil, fmt.Errorf("budget %s: %w", budget.ID, models.ErrBudgetLimitNotPositive)
	}

	spending, err := budget.Spending(db)
	if err != nil {
		return nil, fmt.Errorf("budget %s: %w", budget.ID, err)
	}

	percent := spending.Div(budget.Limit).Mul(decimal.NewFromInt(100))

	tier, crossed := highestCrossed(percent)
	if !crossed {
		return nil, nil
	}

	// An alert at or above the tier means the tier was already reported
	// for this period. The check and the insert run in one transaction.
	var alert *models.BudgetAlert
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.BudgetAlert{}).
			Where("budget_id = ?", budget.ID).
			Where("period = ?", budget.Month).
			Where("threshold_percent >= ?", tier).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return nil
		}

		created := models.BudgetAlert{
			UserID:           budget.UserID,
			BudgetID:         budget.ID,
			ThresholdPercent: tier,
			Period:           budget.Month,
			SpentAmount:      spending,
			LimitAmount:      budget.Limit,
			Status:           models.AlertStatusActive,
		}

		err = tx.Create(&created).Error
		if err != nil {
			return err
		}

		alert = &created
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("budget %s: %w", budget.ID, err)
	}

	return alert, nil
}

// highestCrossed returns the highest threshold the spending percentage has
// reached.
func highestCrossed(percent decimal.Decimal) (int64, bool) {
	var tier int64
	for _, threshold := range Thresholds {
		if percent.GreaterThanOrEqual(decimal.NewFromInt(threshold)) {
			tier = threshold
		}
	}

	return tier, tier > 0
}

// Acknowledge marks an active alert of the user as acknowledged.
func Acknowledge(db *gorm.DB, userID, alertID uuid.UUID) (models.BudgetAlert, error) {
	return transition(db, userID, alertID, models.AlertStatusAcknowledged)
}

// Dismiss marks an active alert of the user as dismissed.
func Dismiss(db *gorm.DB, userID, alertID uuid.UUID) (models.BudgetAlert, error) {
	return transition(db, userID, alertID, models.AlertStatusDismissed)
}

func transition(db *gorm.DB, userID, alertID uuid.UUID, to models.AlertStatus) (models.BudgetAlert, error) {
	var alert models.BudgetAlert
	err := db.First(&alert, "id = ? AND user_id = ?", alertID, userID).Error
	if err != nil {
		return models.BudgetAlert{}, err
	}

	err = alert.Transition(db, to)
	if err != nil {
		return models.BudgetAlert{}, err
	}

	return alert, nil
}

// Stats summarizes the user's alerts by status.
type Stats struct {
	Total        int64 `json:"total" example:"7"`
	Active       int64 `json:"active" example:"2"`
	Acknowledged int64 `json:"acknowledged" example:"4"`
	Dismissed    int64 `json:"dismissed" example:"1"`
}

// Statistics returns alert counts by status for the user.
func Statistics(db *gorm.DB, userID uuid.UUID) (Stats, error) {
	var stats Stats

	type row struct {
		Status models.AlertStatus
		Count  int64
	}

	var rows []row
	err := db.Model(&models.BudgetAlert{}).
		Select("status, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("status").
		Find(&rows).Error
	if err != nil {
		return Stats{}, err
	}

	for _, r := range rows {
		stats.Total += r.Count

		switch r.Status {
		case models.AlertStatusActive:
			stats.Active = r.Count
		case models.AlertStatusAcknowledged:
			stats.Acknowledged = r.Count
		case models.AlertStatusDismissed:
			stats.Dismissed = r.Count
		}
	}

	return stats, nil
}
