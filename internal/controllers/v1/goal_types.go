package v1

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
)

// GoalEditable represents all user configurable parameters
type GoalEditable struct {
	Name     string          `json:"name" example:"Emergency fund" default:""`   // Name of the goal
	Note     string          `json:"note" example:"Three months of expenses" default:""` // Note
	Amount   decimal.Decimal `json:"amount" example:"5000.00"`                   // Target amount
	Month    types.Month     `json:"month" example:"2024-12"`                    // Month the goal should be reached by
	Archived bool            `json:"archived" example:"false" default:"false"`   // Is the goal archived?
}

func (editable GoalEditable) model(userID uuid.UUID) models.Goal {
	return models.Goal{
		UserID:   userID,
		Name:     editable.Name,
		Note:     editable.Note,
		Amount:   editable.Amount,
		Month:    editable.Month,
		Archived: editable.Archived,
	}
}

type Goal struct {
	models.DefaultModel
	GoalEditable

	// These fields are computed
	Saved decimal.Decimal `json:"saved" example:"2371.04"` // Net savings counting towards the goal
}

func newGoal(model models.Goal) (Goal, error) {
	saved, err := model.Saved(models.DB)
	if err != nil {
		return Goal{}, err
	}

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:     model.Name,
			Note:     model.Note,
			Amount:   model.Amount,
			Month:    model.Month,
			Archived: model.Archived,
		},
		Saved: saved,
	}, nil
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of Goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Data  []GoalResponse `json:"data"`                                                          // List of the created Goals or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (g *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                          // Data for the Goal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type GoalQueryFilter struct {
	Name     string `form:"name" filterField:"false"`   // By name
	Note     string `form:"note" filterField:"false"`   // By note
	Search   string `form:"search" filterField:"false"` // By string in name or note
	Archived bool   `form:"archived"`                   // Is the goal archived?
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Goal returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of Goals to return. Defaults to 50.
}

func (f GoalQueryFilter) model() models.Goal {
	return models.Goal{
		Archived: f.Archived,
	}
}
