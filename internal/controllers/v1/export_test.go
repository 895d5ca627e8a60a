package v1_test

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func (suite *TestSuiteStandard) TestExportCSV() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID:   account.ID,
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
	})

	recorder := suite.request(http.MethodGet, "/v1/export/csv", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.Assert().Equal("text/csv; charset=utf-8", recorder.Header().Get("Content-Type"))
	suite.Assert().Contains(recorder.Header().Get("Content-Disposition"), "attachment")

	body := recorder.Body.Bytes()
	suite.Assert().True(bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}), "CSV export must start with a UTF-8 BOM")

	content := string(body)
	suite.Assert().Contains(content, "Date,Description,Amount,Type,Category,Account,Reference")
	suite.Assert().Contains(content, "2024-03-05,Netflix,12.99,expense")
}

func (suite *TestSuiteStandard) TestExportCSVDateRange() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	for _, date := range []time.Time{
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	} {
		_ = suite.createTransaction(token, v1.TransactionEditable{
			AccountID:   account.ID,
			Date:        date,
			Description: "Payment " + date.Format("2006-01"),
			Amount:      decimal.NewFromInt(10),
			Type:        models.TransactionTypeExpense,
		})
	}

	recorder := suite.request(http.MethodGet, "/v1/export/csv?fromDate=2024-03-01&untilDate=2024-04-01", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	content := recorder.Body.String()
	suite.Assert().NotContains(content, "Payment 2024-02")
	suite.Assert().Contains(content, "Payment 2024-03")
	suite.Assert().NotContains(content, "Payment 2024-04")
}

func (suite *TestSuiteStandard) TestExportCSVScopedToUser() {
	token := suite.signUp("morre")
	otherToken := suite.signUp("other")

	otherAccount := suite.createAccount(otherToken, v1.AccountEditable{Name: "Other checking"})
	_ = suite.createTransaction(otherToken, v1.TransactionEditable{
		AccountID:   otherAccount.ID,
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Their secret purchase",
		Amount:      decimal.NewFromInt(10),
		Type:        models.TransactionTypeExpense,
	})

	recorder := suite.request(http.MethodGet, "/v1/export/csv", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)
	suite.Assert().NotContains(recorder.Body.String(), "Their secret purchase")
}

func (suite *TestSuiteStandard) TestExportXLSX() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID:   account.ID,
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
	})

	recorder := suite.request(http.MethodGet, "/v1/export/xlsx", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.Assert().Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", recorder.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(recorder.Body.Bytes()))
	suite.Require().Nil(err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	suite.Require().Nil(err)
	// Header, one transaction and the summary row
	suite.Require().Len(rows, 3)
	suite.Assert().Equal("Netflix", rows[1][1])
	suite.Assert().True(strings.HasPrefix(rows[1][2], "12.99"), "amount cell is %q", rows[1][2])
	suite.Assert().Equal("Total", rows[2][0])
}
