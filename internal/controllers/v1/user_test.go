package v1_test

import (
	"net/http"

	v1 "github.com/pkoka888/budget-control/internal/controllers/v1"
)

func (suite *TestSuiteStandard) TestRegisterUser() {
	recorder := suite.request(http.MethodPost, "/v1/register", v1.UserEditable{
		Name:     "morre",
		Email:    "morre@example.com",
		Password: "correct horse battery staple",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusCreated)

	var response v1.UserResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal("morre", response.Data.Name)
	suite.Assert().Equal("morre@example.com", response.Data.Email)
}

func (suite *TestSuiteStandard) TestRegisterUserInvalid() {
	tests := []struct {
		name     string
		editable v1.UserEditable
	}{
		{"empty name", v1.UserEditable{Name: " ", Email: "a@example.com", Password: "long enough password"}},
		{"invalid email", v1.UserEditable{Name: "morre", Email: "not-an-email", Password: "long enough password"}},
		{"short password", v1.UserEditable{Name: "morre", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		recorder := suite.request(http.MethodPost, "/v1/register", tt.editable, "")
		suite.Assert().Equal(http.StatusBadRequest, recorder.Code, "case %q got %d", tt.name, recorder.Code)
	}
}

func (suite *TestSuiteStandard) TestRegisterUserDuplicateName() {
	_ = suite.signUp("morre")

	recorder := suite.request(http.MethodPost, "/v1/register", v1.UserEditable{
		Name:     "morre",
		Email:    "other@example.com",
		Password: "correct horse battery staple",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response v1.UserResponse
	suite.decodeResponse(recorder, &response)
	suite.Require().NotNil(response.Error)
	suite.Assert().Equal("this username is already taken", *response.Error)
}

func (suite *TestSuiteStandard) TestLoginWrongCredentials() {
	_ = suite.signUp("morre")

	// Wrong password and unknown user return the same error so that valid
	// usernames are not discoverable
	var messages []string
	for _, body := range []v1.LoginRequest{
		{Name: "morre", Password: "wrong password"},
		{Name: "nobody", Password: "wrong password"},
	} {
		recorder := suite.request(http.MethodPost, "/v1/login", body, "")
		suite.assertHTTPStatus(recorder, http.StatusUnauthorized)

		var response v1.LoginResponse
		suite.decodeResponse(recorder, &response)
		suite.Require().NotNil(response.Error)
		messages = append(messages, *response.Error)
	}

	suite.Assert().Equal(messages[0], messages[1])
}

func (suite *TestSuiteStandard) TestLoginRateLimited() {
	_ = suite.signUp("morre")

	for i := 0; i < 5; i++ {
		recorder := suite.request(http.MethodPost, "/v1/login", v1.LoginRequest{
			Name:     "morre",
			Password: "wrong password",
		}, "")
		suite.assertHTTPStatus(recorder, http.StatusUnauthorized)
	}

	// The sixth attempt is blocked even with correct credentials
	recorder := suite.request(http.MethodPost, "/v1/login", v1.LoginRequest{
		Name:     "morre",
		Password: "correct horse battery staple",
	}, "")
	suite.assertHTTPStatus(recorder, http.StatusTooManyRequests)
}

func (suite *TestSuiteStandard) TestAuthenticationRequired() {
	recorder := suite.request(http.MethodGet, "/v1/accounts", nil, "")
	suite.assertHTTPStatus(recorder, http.StatusUnauthorized)

	recorder = suite.request(http.MethodGet, "/v1/accounts", nil, "not-a-valid-token")
	suite.assertHTTPStatus(recorder, http.StatusUnauthorized)
}
