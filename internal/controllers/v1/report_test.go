package v1_test

import (
	"net/http"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestMonthReport() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})
	groceries := suite.createCategory(token, v1.CategoryEditable{Name: "Groceries"})
	transport := suite.createCategory(token, v1.CategoryEditable{Name: "Transport"})

	suite.spend(token, account, groceries, types.NewMonth(2024, 3), 300)
	suite.spend(token, account, transport, types.NewMonth(2024, 3), 100)

	recorder := suite.request(http.MethodGet, "/v1/reports/month?month=2024-03", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.MonthReportResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Expenses.Equal(decimal.NewFromInt(400)), "expenses are %s", response.Data.Expenses)
	suite.Require().Len(response.Data.Categories, 2)

	// Largest category first
	suite.Assert().Equal("Groceries", response.Data.Categories[0].CategoryName)
	suite.Assert().True(response.Data.Categories[0].Percentage.Equal(decimal.NewFromInt(75)), "percentage is %s", response.Data.Categories[0].Percentage)
	suite.Assert().True(response.Data.Categories[0].Income.IsZero())
	suite.Assert().Equal(int64(1), response.Data.Categories[0].Transactions)
}

func (suite *TestSuiteStandard) TestMonthReportMonthRequired() {
	token := suite.signUp("morre")

	recorder := suite.request(http.MethodGet, "/v1/reports/month", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.MonthReportResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("the month query parameter must be set", *response.Error)
}

func (suite *TestSuiteStandard) TestYearReport() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})
	groceries := suite.createCategory(token, v1.CategoryEditable{Name: "Groceries"})

	suite.spend(token, account, groceries, types.NewMonth(2024, 1), 250)
	suite.spend(token, account, groceries, types.NewMonth(2024, 6), 250)

	// Another year, must not count
	suite.spend(token, account, groceries, types.NewMonth(2023, 12), 999)

	recorder := suite.request(http.MethodGet, "/v1/reports/year?year=2024", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.YearReportResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(2024, response.Data.Year)
	suite.Assert().True(response.Data.Expenses.Equal(decimal.NewFromInt(500)), "expenses are %s", response.Data.Expenses)
	suite.Assert().Len(response.Data.Months, 12)
}

func (suite *TestSuiteStandard) TestYearOverYearReport() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})
	groceries := suite.createCategory(token, v1.CategoryEditable{Name: "Groceries"})

	suite.spend(token, account, groceries, types.NewMonth(2023, 3), 100)
	suite.spend(token, account, groceries, types.NewMonth(2024, 3), 150)

	recorder := suite.request(http.MethodGet, "/v1/reports/year-over-year?from=2024-03&until=2024-03", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.YearOverYearReportResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Growth.Equal(decimal.NewFromInt(50)), "growth is %s", response.Data.Growth)
	suite.Assert().Equal("increasing", response.Data.Trend)
	suite.Require().Len(response.Data.Months, 1)
	suite.Assert().True(response.Data.Months[0].PreviousExpenses.Equal(decimal.NewFromInt(100)))
}

func (suite *TestSuiteStandard) TestYearOverYearReportRangeRequired() {
	token := suite.signUp("morre")

	recorder := suite.request(http.MethodGet, "/v1/reports/year-over-year?from=2024-03", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.YearOverYearReportResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("the from and until query parameters must be set to months", *response.Error)
}

func (suite *TestSuiteStandard) TestYearReportYearInvalid() {
	token := suite.signUp("morre")

	recorder := suite.request(http.MethodGet, "/v1/reports/year?year=0", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.YearReportResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("the year query parameter must be a valid year", *response.Error)
}
