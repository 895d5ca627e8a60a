package models_test

import (
	"time"

	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestGoalAmountMustBePositive() {
	user := suite.createTestUser(models.User{})

	goal := models.Goal{
		UserID: user.ID,
		Name:   "Vacation",
		Month:  types.NewMonth(2024, 12),
	}
	err := models.DB.Create(&goal).Error

	suite.Assert().ErrorIs(err, models.ErrGoalAmountNotPositive)
}

func (suite *TestSuiteStandard) TestGoalSaved() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})

	goal := suite.createTestGoal(models.Goal{
		UserID: user.ID,
		Name:   "Emergency fund",
		Amount: decimal.NewFromInt(5000),
		Month:  types.NewMonth(2024, 6),
	})

	_ = suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Date:      time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(3000),
		Type:      models.TransactionTypeIncome,
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Date:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(800),
	})

	// Transactions after the goal's month do not count
	_ = suite.createTestTransaction(models.Transaction{
		UserID:    user.ID,
		AccountID: account.ID,
		Date:      time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.NewFromInt(1000),
		Type:      models.TransactionTypeIncome,
	})

	saved, err := goal.Saved(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(saved.Equal(decimal.NewFromInt(2200)), "saved is %s", saved)
}
