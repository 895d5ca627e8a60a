// Package importer prepares transactions from bank exports for import.
//
// Parsers turn uploaded files into TransactionPreview resources, which are
// then enriched with duplicate information and category suggestions before
// the user confirms them.
package importer

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
)

// TransactionPreview is used to preview transactions that will be imported to allow for editing.
type TransactionPreview struct {
	Transaction             models.Transaction `json:"transaction"`
	DuplicateTransactionIDs []uuid.UUID        `json:"duplicateTransactionIds"`                                    // IDs of existing transactions that this transaction duplicates
	MatchRuleID             uuid.UUID          `json:"matchRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"` // ID of the match rule that assigned the category
}
