package v1

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	ez_uuid "github.com/pkoka888/budget-control/internal/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID uuid.UUID       `json:"categoryId" example:"ae838135-ac1b-4a87-b586-1d94622e2afe"` // ID of the category the budget limits
	Month      types.Month     `json:"month" example:"2024-03"`                                   // Month the budget applies to
	Limit      decimal.Decimal `json:"limit" example:"400.00"`                                    // Spending limit for the month
	Active     bool            `json:"active" example:"true" default:"true"`                      // Is the budget evaluated for alerts?
}

func (editable BudgetEditable) model(userID uuid.UUID) models.Budget {
	return models.Budget{
		UserID:     userID,
		CategoryID: editable.CategoryID,
		Month:      editable.Month,
		Limit:      editable.Limit,
		Active:     editable.Active,
	}
}

type Budget struct {
	models.DefaultModel
	BudgetEditable

	// These fields are computed
	Spent     decimal.Decimal `json:"spent" example:"173.12"`    // Expenses for the category in the budget's month
	Remaining decimal.Decimal `json:"remaining" example:"226.88"` // Limit minus spent, negative when overspent
}

func newBudget(db *gorm.DB, model models.Budget) (Budget, error) {
	spent, err := model.Spending(db)
	if err != nil {
		return Budget{}, err
	}

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			CategoryID: model.CategoryID,
			Month:      model.Month,
			Limit:      model.Limit,
			Active:     model.Active,
		},
		Spent:     spent,
		Remaining: model.Limit.Sub(spent),
	}, nil
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of Budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of the created Budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the Budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	CategoryID ez_uuid.UUID `form:"category"`                   // By ID of the Category
	Month      string       `form:"month" filterField:"false"`  // By month
	Active     bool         `form:"active"`                     // Is the budget active?
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of Budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		CategoryID: f.CategoryID.UUID,
		Active:     f.Active,
	}
}
