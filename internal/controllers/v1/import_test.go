package v1_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/google/uuid"
	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/importer/helpers"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
)

// uploadFile sends a multipart request with the content as the uploaded file.
func (suite *TestSuiteStandard) uploadFile(url, filename, content, token string) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	suite.Require().Nil(err)

	_, err = part.Write([]byte(content))
	suite.Require().Nil(err)
	suite.Require().Nil(writer.Close())

	return suite.request(http.MethodPost, url, body, token, map[string]string{
		"Content-Type": writer.FormDataContentType(),
	})
}

func (suite *TestSuiteStandard) TestImportCSVPreview() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	csv := "Date,Description,Amount,Reference\n" +
		"2024-03-05,Netflix,-12.99,REF1\n" +
		"2024-03-10,Salary,2800.00,REF2\n"

	recorder := suite.uploadFile("/v1/import/csv?accountId="+account.ID.String(), "export.csv", csv, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.ImportPreviewList
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 2)

	suite.Assert().Equal("Netflix", response.Data[0].Transaction.Description)
	suite.Assert().Equal(models.TransactionTypeExpense, response.Data[0].Transaction.Type)
	suite.Assert().True(response.Data[0].Transaction.Amount.Equal(decimal.NewFromFloat(12.99)))

	suite.Assert().Equal(models.TransactionTypeIncome, response.Data[1].Transaction.Type)
}

func (suite *TestSuiteStandard) TestImportCSVPreviewMatchRules() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})
	category := suite.createCategory(token, v1.CategoryEditable{Name: "Entertainment"})
	rule := suite.createMatchRule(token, v1.MatchRuleEditable{
		Priority:   1,
		Match:      "Netflix*",
		CategoryID: category.ID,
	})

	csv := "Date,Description,Amount,Reference\n" +
		"2024-03-05,Netflix Subscription,-12.99,REF1\n" +
		"2024-03-06,Bakery,-4.50,REF2\n"

	recorder := suite.uploadFile("/v1/import/csv?accountId="+account.ID.String(), "export.csv", csv, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.ImportPreviewList
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 2)

	suite.Assert().Equal(rule.ID, response.Data[0].MatchRuleID)
	suite.Require().NotNil(response.Data[0].Transaction.CategoryID)
	suite.Assert().Equal(category.ID, *response.Data[0].Transaction.CategoryID)

	suite.Assert().Equal(uuid.Nil, response.Data[1].MatchRuleID)
}

func (suite *TestSuiteStandard) TestImportCSVPreviewDuplicates() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	line := "2024-03-05,Netflix,-12.99,REF1"

	// An earlier import of the same line
	var user models.User
	suite.Require().Nil(models.DB.First(&user, "name = ?", "morre").Error)

	existing := models.Transaction{
		UserID:      user.ID,
		AccountID:   account.ID,
		Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
		ImportHash:  helpers.Sha256String(line),
	}
	suite.Require().Nil(models.DB.Create(&existing).Error)

	csv := "Date,Description,Amount,Reference\n" + line + "\n"

	recorder := suite.uploadFile("/v1/import/csv?accountId="+account.ID.String(), "export.csv", csv, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.ImportPreviewList
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().Len(response.Data[0].DuplicateTransactionIDs, 1)
	suite.Assert().Equal(existing.ID, response.Data[0].DuplicateTransactionIDs[0])
}

func (suite *TestSuiteStandard) TestImportCSVPreviewErrors() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	// No file
	recorder := suite.request(http.MethodPost, "/v1/import/csv?accountId="+account.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.ImportPreviewList
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("you must send a file to this endpoint", *response.Error)

	// Wrong suffix
	recorder = suite.uploadFile("/v1/import/csv?accountId="+account.ID.String(), "export.xlsx", "irrelevant", token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("this endpoint only supports files of the following types: .csv", *response.Error)

	// Broken content
	recorder = suite.uploadFile("/v1/import/csv?accountId="+account.ID.String(), "export.csv", "Date,Description,Amount\nnot-a-date,x,12", token)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportJSONPreview() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	content := `[{"date": "2024-03-05", "description": "Netflix", "amount": "-12.99", "reference": "REF1"}]`

	recorder := suite.uploadFile("/v1/import/json?accountId="+account.ID.String(), "export.json", content, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.ImportPreviewList
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Netflix", response.Data[0].Transaction.Description)
	suite.Assert().Equal(models.TransactionTypeExpense, response.Data[0].Transaction.Type)
}

func (suite *TestSuiteStandard) TestImportAccountNotDiscoverable() {
	token := suite.signUp("morre")
	otherToken := suite.signUp("other")
	otherAccount := suite.createAccount(otherToken, v1.AccountEditable{Name: "Other checking"})

	csv := "Date,Description,Amount,Reference\n2024-03-05,Netflix,-12.99,REF1\n"

	recorder := suite.uploadFile("/v1/import/csv?accountId="+otherAccount.ID.String(), "export.csv", csv, token)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)
}
