package v1_test

import (
	"net/http"
	"time"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createRecurringTransaction(token string, editable v1.RecurringTransactionEditable) v1.RecurringTransaction {
	recorder := suite.request(http.MethodPost, "/v1/recurring", []v1.RecurringTransactionEditable{editable}, token)
	suite.assertHTTPStatus(recorder, http.StatusCreated)

	var response v1.RecurringTransactionCreateResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Require().NotNil(response.Data[0].Data)

	return *response.Data[0].Data
}

func (suite *TestSuiteStandard) TestRecurringTransactionCRUD() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	definition := suite.createRecurringTransaction(token, v1.RecurringTransactionEditable{
		AccountID:   account.ID,
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Active:      true,
	})
	suite.Assert().Equal("Netflix", definition.Description)

	recorder := suite.request(http.MethodPatch, "/v1/recurring/"+definition.ID.String(), `{"amount": "14.99"}`, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.RecurringTransactionResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(14.99)))
}

func (suite *TestSuiteStandard) TestRecurringTransactionDeleteDeactivates() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	definition := suite.createRecurringTransaction(token, v1.RecurringTransactionEditable{
		AccountID:   account.ID,
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Active:      true,
	})

	recorder := suite.request(http.MethodDelete, "/v1/recurring/"+definition.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)

	// The definition is deactivated, not deleted
	recorder = suite.request(http.MethodGet, "/v1/recurring/"+definition.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.RecurringTransactionResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().False(response.Data.Active)
}

func (suite *TestSuiteStandard) TestRecurringTransactionDetect() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	// Four monthly payments with slightly drifting dates
	for months := 4; months >= 1; months-- {
		_ = suite.createTransaction(token, v1.TransactionEditable{
			AccountID:   account.ID,
			Date:        time.Now().In(time.UTC).AddDate(0, -months, 0),
			Description: "Netflix",
			Amount:      decimal.NewFromFloat(12.99),
			Type:        models.TransactionTypeExpense,
		})
	}

	// Noise that must not show up as a candidate
	_ = suite.createTransaction(token, v1.TransactionEditable{
		AccountID:   account.ID,
		Date:        time.Now().In(time.UTC).AddDate(0, 0, -3),
		Description: "Hardware store",
		Amount:      decimal.NewFromFloat(83.20),
		Type:        models.TransactionTypeExpense,
	})

	recorder := suite.request(http.MethodGet, "/v1/recurring/detect", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.RecurringDetectResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("netflix", response.Data[0].Description)
	suite.Assert().Equal(models.FrequencyMonthly, response.Data[0].Frequency)
	suite.Assert().Equal(4, response.Data[0].Occurrences)

	// A higher minimum filters the series out
	recorder = suite.request(http.MethodGet, "/v1/recurring/detect?minOccurrences=5", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.decodeResponse(recorder, &response)
	suite.Assert().Len(response.Data, 0)
}

func (suite *TestSuiteStandard) TestRecurringTransactionMaterialize() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	definition := suite.createRecurringTransaction(token, v1.RecurringTransactionEditable{
		AccountID:   account.ID,
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
		Active:      true,
	})

	recorder := suite.request(http.MethodPost, "/v1/recurring/"+definition.ID.String()+"/materialize", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusCreated)

	var response v1.TransactionResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("Netflix", response.Data.Description)
	suite.Assert().Equal(time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC), response.Data.Date)

	// The due date advanced by one interval
	recorder = suite.request(http.MethodGet, "/v1/recurring/"+definition.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var updated v1.RecurringTransactionResponse
	suite.decodeResponse(recorder, &updated)
	suite.Require().NotNil(updated.Data)
	suite.Assert().Equal(time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), updated.Data.NextDueDate)
}

func (suite *TestSuiteStandard) TestRecurringTransactionMaterializeDue() {
	token := suite.signUp("morre")
	account := suite.createAccount(token, v1.AccountEditable{Name: "Checking"})

	// One definition due in the past, one in the future
	_ = suite.createRecurringTransaction(token, v1.RecurringTransactionEditable{
		AccountID:   account.ID,
		Description: "Netflix",
		Amount:      decimal.NewFromFloat(12.99),
		Type:        models.TransactionTypeExpense,
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Now().In(time.UTC).AddDate(0, 0, -1),
		Active:      true,
	})
	_ = suite.createRecurringTransaction(token, v1.RecurringTransactionEditable{
		AccountID:   account.ID,
		Description: "Insurance",
		Amount:      decimal.NewFromInt(120),
		Type:        models.TransactionTypeExpense,
		Frequency:   models.FrequencyYearly,
		NextDueDate: time.Now().In(time.UTC).AddDate(0, 1, 0),
		Active:      true,
	})

	recorder := suite.request(http.MethodPost, "/v1/recurring/materialize", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusCreated)

	var response v1.RecurringMaterializeResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("Netflix", response.Data[0].Description)

	// Nothing left to materialize
	recorder = suite.request(http.MethodPost, "/v1/recurring/materialize", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	suite.decodeResponse(recorder, &response)
	suite.Assert().Len(response.Data, 0)
}
