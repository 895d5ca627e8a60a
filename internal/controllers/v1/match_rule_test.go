package v1_test

import (
	"net/http"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
)

func (suite *TestSuiteStandard) createMatchRule(token string, editable v1.MatchRuleEditable) v1.MatchRule {
	recorder := suite.request(http.MethodPost, "/v1/match-rules", []v1.MatchRuleEditable{editable}, token)
	suite.assertHTTPStatus(recorder, http.StatusCreated)

	var response v1.MatchRuleCreateResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)

	return *response.Data[0].Data
}

func (suite *TestSuiteStandard) TestMatchRuleCRUD() {
	token := suite.signUp("morre")
	category := suite.createCategory(token, v1.CategoryEditable{Name: "Entertainment"})

	rule := suite.createMatchRule(token, v1.MatchRuleEditable{
		Priority:   1,
		Match:      "Netflix*",
		CategoryID: category.ID,
	})
	suite.Assert().Equal("Netflix*", rule.Match)

	recorder := suite.request(http.MethodPatch, "/v1/match-rules/"+rule.ID.String(), `{"priority": 5}`, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.MatchRuleResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(uint(5), response.Data.Priority)
	suite.Assert().Equal("Netflix*", response.Data.Match)

	recorder = suite.request(http.MethodDelete, "/v1/match-rules/"+rule.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestMatchRuleCreateEmptyMatch() {
	token := suite.signUp("morre")
	category := suite.createCategory(token, v1.CategoryEditable{Name: "Entertainment"})

	recorder := suite.request(http.MethodPost, "/v1/match-rules", []v1.MatchRuleEditable{{
		Priority:   1,
		Match:      "   ",
		CategoryID: category.ID,
	}}, token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.MatchRuleCreateResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().NotNil(response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestMatchRuleListSortedByPriority() {
	token := suite.signUp("morre")
	category := suite.createCategory(token, v1.CategoryEditable{Name: "Entertainment"})

	_ = suite.createMatchRule(token, v1.MatchRuleEditable{Priority: 3, Match: "Amazon*", CategoryID: category.ID})
	_ = suite.createMatchRule(token, v1.MatchRuleEditable{Priority: 1, Match: "Netflix*", CategoryID: category.ID})
	_ = suite.createMatchRule(token, v1.MatchRuleEditable{Priority: 2, Match: "Spotify*", CategoryID: category.ID})

	recorder := suite.request(http.MethodGet, "/v1/match-rules", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.MatchRuleListResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("Netflix*", response.Data[0].Match)
	suite.Assert().Equal("Spotify*", response.Data[1].Match)
	suite.Assert().Equal("Amazon*", response.Data[2].Match)
}

func (suite *TestSuiteStandard) TestMatchRuleForeignCategory() {
	token := suite.signUp("morre")
	otherToken := suite.signUp("other")
	otherCategory := suite.createCategory(otherToken, v1.CategoryEditable{Name: "Theirs"})

	recorder := suite.request(http.MethodPost, "/v1/match-rules", []v1.MatchRuleEditable{{
		Priority:   1,
		Match:      "Netflix*",
		CategoryID: otherCategory.ID,
	}}, token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.MatchRuleCreateResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Error)
	suite.Assert().Equal("the category does not exist or belongs to another user", *response.Data[0].Error)
}
