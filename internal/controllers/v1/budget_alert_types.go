package v1

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/alerts"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	ez_uuid "github.com/pkoka888/budget-control/internal/uuid"
	"github.com/shopspring/decimal"
)

// BudgetAlert is a generated alert. Alerts have no Editable struct since
// they cannot be user-authored, only acknowledged or dismissed.
type BudgetAlert struct {
	models.DefaultModel
	BudgetID         uuid.UUID          `json:"budgetId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the budget the alert belongs to
	ThresholdPercent int64              `json:"thresholdPercent" example:"75"`                            // Crossed threshold tier in percent
	Period           types.Month        `json:"period" example:"2024-03"`                                 // Month the alert applies to
	SpentAmount      decimal.Decimal    `json:"spentAmount" example:"312.17"`                             // Spending at the time the alert was created
	LimitAmount      decimal.Decimal    `json:"limitAmount" example:"400.00"`                             // Budget limit at the time the alert was created
	Status           models.AlertStatus `json:"status" example:"active"`                                  // Lifecycle status
}

func newBudgetAlert(model models.BudgetAlert) BudgetAlert {
	return BudgetAlert{
		DefaultModel:     model.DefaultModel,
		BudgetID:         model.BudgetID,
		ThresholdPercent: model.ThresholdPercent,
		Period:           model.Period,
		SpentAmount:      model.SpentAmount,
		LimitAmount:      model.LimitAmount,
		Status:           model.Status,
	}
}

type BudgetAlertListResponse struct {
	Data       []BudgetAlert `json:"data"`                                                          // List of alerts
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type BudgetAlertResponse struct {
	Data  *BudgetAlert `json:"data"`                                                          // Data for the alert
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetAlertGenerateResponse struct {
	Data   []BudgetAlert `json:"data"`                                             // Newly created alerts
	Errors []string      `json:"errors" example:"budget 5b23e4...: limit invalid"` // Per-budget failures, the run continues past them
	Error  *string       `json:"error" example:"the month query parameter must be set"` // The error, if the whole request failed
}

type BudgetAlertStatsResponse struct {
	Data  *alerts.Stats `json:"data"`                                                 // Alert counts by status
	Error *string       `json:"error" example:"an error occurred on the server"` // The error, if any occurred
}

type BudgetAlertQueryFilter struct {
	BudgetID ez_uuid.UUID `form:"budget"`                     // By ID of the Budget
	Status   string       `form:"status"`                     // By alert status
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first alert returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of alerts to return. Defaults to 50.
}

func (f BudgetAlertQueryFilter) model() models.BudgetAlert {
	return models.BudgetAlert{
		BudgetID: f.BudgetID.UUID,
		Status:   models.AlertStatus(f.Status),
	}
}
