package importer

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// DuplicateTransactions finds duplicate transactions by their import hash. For all input resources,
// existing transactions of the user with the same import hash are searched. If any exist, their IDs
// are set in the DuplicateTransactionIDs field.
func DuplicateTransactions(db *gorm.DB, transaction *TransactionPreview, userID uuid.UUID) {
	var duplicates []models.Transaction
	db.
		Where(models.Transaction{
			ImportHash: transaction.Transaction.ImportHash,
		}).
		Where("user_id = ?", userID).
		Find(&duplicates)

	// When there are no resources, we want an empty list, not null
	// Therefore, we use make to create a slice with zero elements
	// which will be marshalled to an empty JSON array
	duplicateIDs := make([]uuid.UUID, 0)
	for _, duplicate := range duplicates {
		duplicateIDs = append(duplicateIDs, duplicate.ID)
	}
	transaction.DuplicateTransactionIDs = duplicateIDs
}

// Match applies the match rules to a transaction preview.
//
// Since rules are loaded from the database in priority order, the first
// matching rule wins.
func Match(transaction *TransactionPreview, rules []models.MatchRule) {
	for _, rule := range rules {
		if glob.Glob(rule.Match, transaction.Transaction.Description) {
			transaction.Transaction.CategoryID = &rule.CategoryID
			transaction.MatchRuleID = rule.ID
			return
		}
	}
}

// Rules loads the user's match rules in priority order.
func Rules(db *gorm.DB, userID uuid.UUID) ([]models.MatchRule, error) {
	var rules []models.MatchRule
	err := db.
		Where("user_id = ?", userID).
		Order("priority ASC").
		Find(&rules).Error

	return rules, err
}
