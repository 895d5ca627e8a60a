package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	ez_uuid "github.com/pkoka888/budget-control/internal/uuid"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	AccountID       uuid.UUID              `json:"accountId" example:"d06d3d23-26dc-4b3e-b9c3-9f82ff4d2e19"` // ID of the account the transaction belongs to
	CategoryID      *uuid.UUID             `json:"categoryId"`                                               // Optional ID of the category
	Date            time.Time              `json:"date" example:"2024-03-05T00:00:00Z"`                      // Date of the transaction
	Description     string                 `json:"description" example:"Netflix" default:""`                 // Payee or booking text
	Amount          decimal.Decimal        `json:"amount" example:"29.99"`                                   // Amount, always positive
	Type            models.TransactionType `json:"type" example:"expense" default:"expense"`                 // Direction of the transaction
	Currency        string                 `json:"currency" example:"EUR" default:""`                        // Currency of the transaction
	ReferenceNumber string                 `json:"referenceNumber" example:"REF-123" default:""`             // Bank reference number
	ImportHash      string                 `json:"importHash" default:""`                                    // Hash of the imported record for duplicate detection
}

func (editable TransactionEditable) model(userID uuid.UUID) models.Transaction {
	return models.Transaction{
		UserID:          userID,
		AccountID:       editable.AccountID,
		CategoryID:      editable.CategoryID,
		Date:            editable.Date,
		Description:     editable.Description,
		Amount:          editable.Amount,
		Type:            editable.Type,
		Currency:        editable.Currency,
		ReferenceNumber: editable.ReferenceNumber,
		ImportHash:      editable.ImportHash,
	}
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
}

func newTransaction(model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			AccountID:       model.AccountID,
			CategoryID:      model.CategoryID,
			Date:            model.Date,
			Description:     model.Description,
			Amount:          model.Amount,
			Type:            model.Type,
			Currency:        model.Currency,
			ReferenceNumber: model.ReferenceNumber,
			ImportHash:      model.ImportHash,
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of Transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of the created Transactions or their respective error
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the Transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	AccountID         ez_uuid.UUID    `form:"account"`                        // By ID of the Account
	CategoryID        ez_uuid.UUID    `form:"category"`                       // By ID of the Category
	Type              string          `form:"type"`                           // By transaction type
	Description       string          `form:"description" filterField:"false"` // Search in the description
	FromDate          time.Time       `form:"fromDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"`  // Transactions at or after this date
	UntilDate         time.Time       `form:"untilDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"` // Transactions before this date
	AmountMoreOrEqual decimal.Decimal `form:"amountMoreOrEqual" filterField:"false"` // Amount of the transaction. Transactions with equal or higher amounts are returned
	AmountLessOrEqual decimal.Decimal `form:"amountLessOrEqual" filterField:"false"` // Amount of the transaction. Transactions with equal or lower amounts are returned
	Offset            uint            `form:"offset" filterField:"false"`     // The offset of the first Transaction returned. Defaults to 0.
	Limit             int             `form:"limit" filterField:"false"`      // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() (models.Transaction, error) {
	var categoryID *uuid.UUID
	if f.CategoryID.UUID != uuid.Nil {
		categoryID = &f.CategoryID.UUID
	}

	return models.Transaction{
		AccountID:  f.AccountID.UUID,
		CategoryID: categoryID,
		Type:       models.TransactionType(f.Type),
	}, nil
}
