package models_test

import (
	"time"

	"github.com/pkoka888/budget-control/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAccountBalance() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{
		UserID:         user.ID,
		InitialBalance: decimal.NewFromInt(100),
	})

	_ = suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(2000),
		Type:      models.TransactionTypeIncome,
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromFloat(49.99),
	})

	// A transaction after the requested point in time must not count
	_ = suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Date:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(500),
	})

	balance, err := account.Balance(models.DB, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC))
	suite.Require().Nil(err)
	suite.Assert().True(balance.Equal(decimal.NewFromFloat(2050.01)), "balance is %s", balance)
}

func (suite *TestSuiteStandard) TestAccountNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestAccount(models.Account{UserID: user.ID, Name: "Checking"})

	duplicate := models.Account{UserID: user.ID, Name: "Checking"}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)

	// The same name is fine for another user
	otherUser := suite.createTestUser(models.User{})
	_ = suite.createTestAccount(models.Account{UserID: otherUser.ID, Name: "Checking"})
}

func (suite *TestSuiteStandard) TestAccountRequiresUser() {
	account := models.Account{Name: "Orphaned"}
	err := models.DB.Create(&account).Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAccountTrimsWhitespace() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{
		UserID: user.ID,
		Name:   "  Checking  ",
		Note:   " main account ",
	})

	suite.Assert().Equal("Checking", account.Name)
	suite.Assert().Equal("main account", account.Note)
}
