package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAccountCRUD() {
	token := suite.signUp("morre")

	account := suite.createAccount(token, v1.AccountEditable{
		Name:           "Checking",
		InitialBalance: decimal.NewFromInt(100),
	})
	suite.Assert().Equal("Checking", account.Name)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromInt(100)))

	// Update
	recorder := suite.request(http.MethodPatch, "/v1/accounts/"+account.ID.String(), `{"note": "main account"}`, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.AccountResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("main account", response.Data.Note)
	suite.Assert().Equal("Checking", response.Data.Name, "PATCH must not overwrite unrelated fields")

	// Read
	recorder = suite.request(http.MethodGet, "/v1/accounts/"+account.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	// Delete
	recorder = suite.request(http.MethodDelete, "/v1/accounts/"+account.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodGet, "/v1/accounts/"+account.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountBalanceIncludesTransactions() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{
		Name:           "Checking",
		InitialBalance: decimal.NewFromInt(100),
	})

	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID: account.ID,
		Date:      time.Now().AddDate(0, 0, -1),
		Amount:    decimal.NewFromInt(2000),
		Type:      models.TransactionTypeIncome,
	})
	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID: account.ID,
		Date:      time.Now().AddDate(0, 0, -1),
		Amount:    decimal.NewFromFloat(49.99),
		Type:      models.TransactionTypeExpense,
	})

	recorder := suite.request(http.MethodGet, "/v1/accounts/"+account.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.AccountResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Balance.Equal(decimal.NewFromFloat(2050.01)), "balance is %s", response.Data.Balance)
}

func (suite *TestSuiteStandard) TestAccountNotDiscoverable() {
	token := suite.signUp("morre")
	otherToken := suite.signUp("other")

	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	// Resources of other users return a 404, not a 403
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		recorder := suite.request(method, "/v1/accounts/"+account.ID.String(), nil, otherToken)
		suite.assertHTTPStatus(recorder, http.StatusNotFound)
	}

	recorder := suite.request(http.MethodPatch, "/v1/accounts/"+account.ID.String(), `{"name": "hijacked"}`, otherToken)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountListFilter() {
	token := suite.signUp("morre")

	_ = suite.createAccount(token, v1.AccountEditable{Name: "Checking", Type: models.AccountTypeChecking})
	_ = suite.createAccount(token, v1.AccountEditable{Name: "Savings", Type: models.AccountTypeSavings})
	_ = suite.createAccount(token, v1.AccountEditable{Name: "Old", Type: models.AccountTypeChecking, Archived: true})

	tests := []struct {
		query string
		count int
		total int64
	}{
		{"", 3, 3},
		{"type=savings", 1, 1},
		{"archived=true", 1, 1},
		{"name=Check", 1, 1},
		{"limit=2", 2, 3},
		{"offset=2", 1, 3},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/accounts?%s", tt.query), nil, token)
		suite.assertHTTPStatus(recorder, http.StatusOK)

		var response v1.AccountListResponse
		suite.decodeResponse(recorder, &response)
		suite.Assert().Len(response.Data, tt.count, "query %q", tt.query)
		suite.Require().NotNil(response.Pagination, "query %q", tt.query)
		suite.Assert().Equal(tt.total, response.Pagination.Total, "query %q", tt.query)
	}
}

func (suite *TestSuiteStandard) TestAccountListScopedToUser() {
	token := suite.signUp("morre")
	otherToken := suite.signUp("other")

	_ = suite.createAccount(token, v1.AccountEditable{Name: "Checking"})
	_ = suite.createAccount(otherToken, v1.AccountEditable{Name: "Other checking"})

	recorder := suite.request(http.MethodGet, "/v1/accounts", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.AccountListResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Checking", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestAccountCreatePartialFailure() {
	token := suite.signUp("morre")
	_ = suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	// One valid, one duplicate: the request reports both results
	recorder := suite.request(http.MethodPost, "/v1/accounts", []v1.AccountEditable{
		{Name: "Savings"},
		{Name: "Checking"},
	}, token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.AccountCreateResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 2)
	suite.Assert().NotNil(response.Data[0].Data)
	suite.Assert().NotNil(response.Data[1].Error)
}
