package v1

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/recurring"
	ez_uuid "github.com/pkoka888/budget-control/internal/uuid"
	"github.com/shopspring/decimal"
)

// RecurringTransactionEditable represents all user configurable parameters
type RecurringTransactionEditable struct {
	AccountID   uuid.UUID        `json:"accountId" example:"d06d3d23-26dc-4b3e-b9c3-9f82ff4d2e19"` // ID of the account transactions are created in
	CategoryID  *uuid.UUID       `json:"categoryId"`                                               // Optional ID of the category
	Description string           `json:"description" example:"Netflix" default:""`                 // Payee or booking text
	Amount      decimal.Decimal  `json:"amount" example:"12.99"`                                   // Amount, always positive
	Type        models.TransactionType `json:"type" example:"expense" default:"expense"`           // Direction of the created transactions
	Frequency   models.Frequency `json:"frequency" example:"monthly"`                              // Interval at which transactions recur
	NextDueDate time.Time        `json:"nextDueDate" example:"2024-04-05T00:00:00Z"`               // Date the next transaction is due
	Active      bool             `json:"active" example:"true" default:"true"`                     // Is the definition materialized?
}

func (editable RecurringTransactionEditable) model(userID uuid.UUID) models.RecurringTransaction {
	return models.RecurringTransaction{
		UserID:      userID,
		AccountID:   editable.AccountID,
		CategoryID:  editable.CategoryID,
		Description: editable.Description,
		Amount:      editable.Amount,
		Type:        editable.Type,
		Frequency:   editable.Frequency,
		NextDueDate: editable.NextDueDate,
		Active:      editable.Active,
	}
}

type RecurringTransaction struct {
	models.DefaultModel
	RecurringTransactionEditable
}

func newRecurringTransaction(model models.RecurringTransaction) RecurringTransaction {
	return RecurringTransaction{
		DefaultModel: model.DefaultModel,
		RecurringTransactionEditable: RecurringTransactionEditable{
			AccountID:   model.AccountID,
			CategoryID:  model.CategoryID,
			Description: model.Description,
			Amount:      model.Amount,
			Type:        model.Type,
			Frequency:   model.Frequency,
			NextDueDate: model.NextDueDate,
			Active:      model.Active,
		},
	}
}

type RecurringTransactionListResponse struct {
	Data       []RecurringTransaction `json:"data"`                                                          // List of definitions
	Error      *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination            `json:"pagination"`                                                    // Pagination information
}

type RecurringTransactionCreateResponse struct {
	Data  []RecurringTransactionResponse `json:"data"`                                                          // List of the created definitions or their respective error
	Error *string                        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RecurringTransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringTransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringTransactionResponse struct {
	Data  *RecurringTransaction `json:"data"`                                                          // Data for the definition
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RecurringDetectResponse struct {
	Data  []recurring.Candidate `json:"data"`                                            // Detected candidate series
	Error *string               `json:"error" example:"an error occurred on the server"` // The error, if any occurred
}

type RecurringDetectQuery struct {
	MinOccurrences int `form:"minOccurrences"` // Minimum number of transactions for a candidate. Defaults to 3.
	LookbackDays   int `form:"lookbackDays"`   // How far back transactions are scanned. Defaults to 365.
}

type RecurringMaterializeResponse struct {
	Data   []Transaction `json:"data"`                                                  // Transactions created for due definitions
	Errors []string      `json:"errors" example:"there is no Account matching your query"` // Per-definition failures
	Error  *string       `json:"error" example:"an error occurred on the server"`       // The error, if the whole request failed
}

type RecurringTransactionQueryFilter struct {
	AccountID ez_uuid.UUID `form:"account"`                    // By ID of the Account
	Frequency string       `form:"frequency"`                  // By frequency
	Active    bool         `form:"active"`                     // Is the definition active?
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first definition returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of definitions to return. Defaults to 50.
}

func (f RecurringTransactionQueryFilter) model() models.RecurringTransaction {
	return models.RecurringTransaction{
		AccountID: f.AccountID.UUID,
		Frequency: models.Frequency(f.Frequency),
		Active:    f.Active,
	}
}
