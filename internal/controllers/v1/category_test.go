package v1_test

import (
	"net/http"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
	"github.com/pkoka888/budget-control/internal/models"
)

// createGlobalCategory creates a category without an owner directly in the
// database, the way an instance administrator would.
func (suite *TestSuiteStandard) createGlobalCategory(name string) models.Category {
	category := models.Category{Name: name}
	suite.Require().Nil(models.DB.Create(&category).Error)

	return category
}

func (suite *TestSuiteStandard) TestCategoryCRUD() {
	token := suite.signUp("morre")

	category := suite.createCategory(token, v1.CategoryEditable{
		Name:  "Groceries",
		Color: "#2ecc71",
	})
	suite.Assert().False(category.Global)

	recorder := suite.request(http.MethodPatch, "/v1/categories/"+category.ID.String(), `{"icon": "cart"}`, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	recorder = suite.request(http.MethodDelete, "/v1/categories/"+category.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestCategoryGlobalVisible() {
	token := suite.signUp("morre")
	global := suite.createGlobalCategory("Rent")
	_ = suite.createCategory(token, v1.CategoryEditable{Name: "Groceries"})

	// The list contains both the user's and the global categories
	recorder := suite.request(http.MethodGet, "/v1/categories", nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.CategoryListResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().Len(response.Data, 2)

	// Global categories can be read
	recorder = suite.request(http.MethodGet, "/v1/categories/"+global.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var single v1.CategoryResponse
	suite.decodeResponse(recorder, &single)
	suite.Require().NotNil(single.Data)
	suite.Assert().True(single.Data.Global)
}

func (suite *TestSuiteStandard) TestCategoryGlobalReadOnly() {
	token := suite.signUp("morre")
	global := suite.createGlobalCategory("Rent")

	recorder := suite.request(http.MethodPatch, "/v1/categories/"+global.ID.String(), `{"name": "hijacked"}`, token)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)

	recorder = suite.request(http.MethodDelete, "/v1/categories/"+global.ID.String(), nil, token)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCategoryScopedToUser() {
	token := suite.signUp("morre")
	otherToken := suite.signUp("other")

	category := suite.createCategory(token, v1.CategoryEditable{Name: "Groceries"})

	recorder := suite.request(http.MethodGet, "/v1/categories/"+category.ID.String(), nil, otherToken)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)

	recorder = suite.request(http.MethodGet, "/v1/categories", nil, otherToken)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response v1.CategoryListResponse
	suite.decodeResponse(recorder, &response)
	suite.Assert().Len(response.Data, 0)
}
