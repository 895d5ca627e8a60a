package v1

import (
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/models"
	ez_uuid "github.com/pkoka888/budget-control/internal/uuid"
)

// MatchRuleEditable represents all user configurable parameters
type MatchRuleEditable struct {
	Priority   uint      `json:"priority" example:"1"`                                      // Rules are applied in ascending priority order, the first match wins
	Match      string    `json:"match" example:"Netflix*"`                                  // Glob pattern matched against transaction descriptions
	CategoryID uuid.UUID `json:"categoryId" example:"ae838135-ac1b-4a87-b586-1d94622e2afe"` // ID of the category assigned on match
}

func (editable MatchRuleEditable) model(userID uuid.UUID) models.MatchRule {
	return models.MatchRule{
		UserID:     userID,
		Priority:   editable.Priority,
		Match:      editable.Match,
		CategoryID: editable.CategoryID,
	}
}

type MatchRule struct {
	models.DefaultModel
	MatchRuleEditable
}

func newMatchRule(model models.MatchRule) MatchRule {
	return MatchRule{
		DefaultModel: model.DefaultModel,
		MatchRuleEditable: MatchRuleEditable{
			Priority:   model.Priority,
			Match:      model.Match,
			CategoryID: model.CategoryID,
		},
	}
}

type MatchRuleListResponse struct {
	Data       []MatchRule `json:"data"`                                                          // List of MatchRules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchRuleCreateResponse struct {
	Data  []MatchRuleResponse `json:"data"`                                                          // List of the created MatchRules or their respective error
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MatchRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchRuleResponse struct {
	Data  *MatchRule `json:"data"`                                                          // Data for the MatchRule
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MatchRuleQueryFilter struct {
	Match      string       `form:"match"`                      // By match
	CategoryID ez_uuid.UUID `form:"category"`                   // By ID of the Category
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first rule returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of rules to return. Defaults to 50.
}

func (f MatchRuleQueryFilter) model() models.MatchRule {
	return models.MatchRule{
		Match:      f.Match,
		CategoryID: f.CategoryID.UUID,
	}
}
