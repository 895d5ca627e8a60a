package models_test

import (
	"time"

	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetUnique() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: &user.ID})

	_ = suite.createTestBudget(models.Budget{
		UserID:     user.ID,
		CategoryID: category.ID,
		Month:      types.NewMonth(2024, 3),
		Limit:      decimal.NewFromInt(400),
	})

	duplicate := models.Budget{
		UserID:     user.ID,
		CategoryID: category.ID,
		Month:      types.NewMonth(2024, 3),
		Limit:      decimal.NewFromInt(500),
	}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetNotUnique)

	// The same category can be budgeted in another month
	_ = suite.createTestBudget(models.Budget{
		UserID:     user.ID,
		CategoryID: category.ID,
		Month:      types.NewMonth(2024, 4),
		Limit:      decimal.NewFromInt(400),
	})
}

func (suite *TestSuiteStandard) TestBudgetLimitMustBePositive() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: &user.ID})

	budget := models.Budget{
		UserID:     user.ID,
		CategoryID: category.ID,
		Month:      types.NewMonth(2024, 3),
		Limit:      decimal.Zero,
	}
	err := models.DB.Create(&budget).Error

	suite.Assert().ErrorIs(err, models.ErrBudgetLimitNotPositive)
}

func (suite *TestSuiteStandard) TestBudgetForeignCategory() {
	user := suite.createTestUser(models.User{})
	otherUser := suite.createTestUser(models.User{})
	otherCategory := suite.createTestCategory(models.Category{UserID: &otherUser.ID})

	budget := models.Budget{
		UserID:     user.ID,
		CategoryID: otherCategory.ID,
		Month:      types.NewMonth(2024, 3),
		Limit:      decimal.NewFromInt(400),
	}
	err := models.DB.Create(&budget).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryNotAccessible)
}

func (suite *TestSuiteStandard) TestBudgetSpending() {
	user := suite.createTestUser(models.User{})
	account := suite.createTestAccount(models.Account{UserID: user.ID})
	category := suite.createTestCategory(models.Category{UserID: &user.ID})

	budget := suite.createTestBudget(models.Budget{
		UserID:     user.ID,
		CategoryID: category.ID,
		Month:      types.NewMonth(2024, 3),
		Limit:      decimal.NewFromInt(400),
	})

	// Two expenses within the month count towards spending
	for _, day := range []int{3, 17} {
		_ = suite.createTestTransaction(models.Transaction{
			UserID:     user.ID,
			AccountID:  account.ID,
			CategoryID: &category.ID,
			Date:       time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			Amount:     decimal.NewFromInt(50),
		})
	}

	// Income, other months and other categories do not
	_ = suite.createTestTransaction(models.Transaction{
		UserID:     user.ID,
		AccountID:  account.ID,
		CategoryID: &category.ID,
		Date:       time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(1000),
		Type:       models.TransactionTypeIncome,
	})
	_ = suite.createTestTransaction(models.Transaction{
		UserID:     user.ID,
		AccountID:  account.ID,
		CategoryID: &category.ID,
		Date:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount:     decimal.NewFromInt(75),
	})

	spent, err := budget.Spending(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(spent.Equal(decimal.NewFromInt(100)), "spending is %s", spent)
}
