package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionCRUD() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	transaction := suite.createTransaction(token, v1.TransactionEditable{
		AccountID:   account.ID,
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
	})
	suite.Assert().Equal("Netflix", transaction.Description)

	recorder := suite.request(http.MethodPatch, "/v1/transactions/"+transaction.ID.String(), `{"description": "Netflix Premium"}`, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.TransactionResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Netflix Premium", response.Data.Description)

	recorder = suite.request(http.MethodDelete, "/v1/transactions/"+transaction.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestTransactionCreateForeignAccount() {
	token := suite.signUp("morre")
	otherToken := suite.signUp("other")
	otherAccount := suite.createAccount(otherToken, v1.AccountEditable{Name: "Other checking"})

	recorder := suite.request(http.MethodPost, "/v1/transactions", []v1.TransactionEditable{{
		AccountID: otherAccount.ID,
		Amount:    decimal.NewFromInt(10),
		Type:      models.TransactionTypeExpense,
	}}, token)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)

	var response v1.TransactionCreateResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().NotNil(response.Data[0].Error)
}

func (suite *TestSuiteStandard) TestTransactionListFilters() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})
	otherAccount := suite.createAccount(token, v1.AccountEditable{Name: "Savings"})
	category := suite.createCategory(token, v1.CategoryEditable{Name: "Entertainment"})

	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID:   account.ID,
		CategoryID:  &category.ID,
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
	})
	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID:   account.ID,
		Date:        time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Salary",
		Amount:      decimal.NewFromInt(2800),
		Type:        models.TransactionTypeIncome,
	})
	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID:   otherAccount.ID,
		Date:        time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		Description: "Transfer to savings",
		Amount:      decimal.NewFromInt(500),
		Type:        models.TransactionTypeExpense,
	})

	tests := []struct {
		query string
		count int
	}{
		{"", 3},
		{fmt.Sprintf("account=%s", account.ID), 2},
		{fmt.Sprintf("category=%s", category.ID), 1},
		{"type=income", 1},
		{"description=netflix", 1},
		{"fromDate=2024-04-01", 1},
		{"untilDate=2024-03-31", 2},
		{"fromDate=2024-03-06&untilDate=2024-03-31", 1},
		{"amountMoreOrEqual=500", 2},
		{"amountLessOrEqual=500", 2},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodGet, fmt.Sprintf("/v1/transactions?%s", tt.query), nil, token)
		suite.assertHTTPStatus(recorder, http.StatusOK)

		var response v1.TransactionListResponse
		suite.decodeResponse(recorder, &response)
		suite.Assert().Len(response.Data, tt.count, "query %q", tt.query)
	}
}

func (suite *TestSuiteStandard) TestTransactionListSorted() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	for _, day := range []int{10, 5, 20} {
		_ = suite.createTransaction(token, v1.TransactionEditable{
			AccountID: account.ID,
			Date:      time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Amount:    decimal.NewFromInt(10),
			Type:      models.TransactionTypeExpense,
		})
	}

	recorder := suite.request(http.MethodGet, "/v1/transactions", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.TransactionListResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 3)

	// Newest first
	suite.Assert().Equal(20, response.Data[0].Date.Day())
	suite.Assert().Equal(10, response.Data[1].Date.Day())
	suite.Assert().Equal(5, response.Data[2].Date.Day())
}
