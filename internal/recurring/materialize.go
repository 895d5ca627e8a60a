package recurring

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"gorm.io/gorm"
)

// Materialize creates the next transaction for a recurring definition and
// advances its due date. Both happen in one database transaction so that a
// failure leaves the definition untouched.
//
// The created transaction is dated at the definition's current NextDueDate,
// not at the materialization time.
func Materialize(db *gorm.DB, recurring *models.RecurringTransaction) (models.Transaction, error) {
	if !recurring.Active {
		return models.Transaction{}, models.ErrRecurringNotActive
	}

	transaction := models.Transaction{
		UserID:      recurring.UserID,
		AccountID:   recurring.AccountID,
		CategoryID:  recurring.CategoryID,
		Date:        recurring.NextDueDate,
		Description: recurring.Description,
		Amount:      recurring.Amount,
		Type:        recurring.Type,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		next := recurring.Frequency.NextDate(recurring.NextDueDate)
		return tx.Model(recurring).Select("NextDueDate").Updates(models.RecurringTransaction{NextDueDate: next}).Error
	})
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// MaterializeDue materializes every active recurring definition of the user
// whose due date is not after the reference time. Definitions that are due
// multiple times over are materialized once per due period.
//
// Failures for single definitions are collected and do not stop the run.
func MaterializeDue(db *gorm.DB, userID uuid.UUID, until time.Time) ([]models.Transaction, []error) {
	var due []models.RecurringTransaction
	err := db.
		Where("user_id = ?", userID).
		Where("active = ?", true).
		Where("datetime(next_due_date) <= datetime(?)", until).
		Order("datetime(next_due_date) ASC").
		Find(&due).Error
	if err != nil {
		return nil, []error{err}
	}

	created := make([]models.Transaction, 0, len(due))
	errs := make([]error, 0)

	for i := range due {
		for !due[i].NextDueDate.After(until) {
			transaction, err := Materialize(db, &due[i])
			if err != nil {
				errs = append(errs, err)
				break
			}

			created = append(created, transaction)
		}
	}

	return created, errs
}
