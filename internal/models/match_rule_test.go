package models_test

import (
	"github.com/pkoka888/budget-control/internal/models"
)

func (suite *TestSuiteStandard) TestMatchRuleMatchEmpty() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: &user.ID})

	matchRule := models.MatchRule{
		UserID:     user.ID,
		Match:      "   ",
		CategoryID: category.ID,
	}
	err := models.DB.Create(&matchRule).Error

	suite.Assert().ErrorIs(err, models.ErrMatchRuleMatchEmpty)
}

func (suite *TestSuiteStandard) TestMatchRuleForeignCategory() {
	user := suite.createTestUser(models.User{})
	otherUser := suite.createTestUser(models.User{})
	otherCategory := suite.createTestCategory(models.Category{UserID: &otherUser.ID})

	matchRule := models.MatchRule{
		UserID:     user.ID,
		Match:      "Netflix*",
		CategoryID: otherCategory.ID,
	}
	err := models.DB.Create(&matchRule).Error

	suite.Assert().ErrorIs(err, models.ErrCategoryNotAccessible)
}

func (suite *TestSuiteStandard) TestMatchRuleTrimsMatch() {
	user := suite.createTestUser(models.User{})
	category := suite.createTestCategory(models.Category{UserID: &user.ID})

	matchRule := suite.createTestMatchRule(models.MatchRule{
		UserID:     user.ID,
		Match:      " Netflix* ",
		CategoryID: category.ID,
	})

	suite.Assert().Equal("Netflix*", matchRule.Match)
}
