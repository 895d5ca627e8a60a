package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkoka888/budget-control/internal/httputil"
	"github.com/pkoka888/budget-control/internal/models"
)

// RegisterUserRoutes registers the routes for registration and login with
// the RouterGroup that is passed. These routes are public.
func RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/register", httputil.OptionsPost)
	r.POST("/register", RegisterUser)

	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", Login)
}

// @Summary		Register user
// @Description	Creates a new user account
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/register [post]
func RegisterUser(c *gin.Context) {
	var editable UserEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	if err := editable.valid(); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, UserResponse{
			Error: &e,
		})
		return
	}

	user := models.User{
		Name:  strings.TrimSpace(editable.Name),
		Email: editable.Email,
	}

	err = user.SetPassword(editable.Password)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, UserResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Create(&user).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &e,
		})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Login
// @Description	Verifies the credentials and returns a bearer token
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	LoginResponse
// @Failure		400		{object}	LoginResponse
// @Failure		401		{object}	LoginResponse
// @Failure		429		{object}	LoginResponse
// @Param			login	body		LoginRequest	true	"Credentials"
// @Router			/v1/login [post]
func Login(c *gin.Context) {
	var request LoginRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), LoginResponse{
			Error: &e,
		})
		return
	}

	if !loginLimiter.Allow(request.Name) {
		e := errLoginRateLimited.Error()
		c.JSON(http.StatusTooManyRequests, LoginResponse{
			Error: &e,
		})
		return
	}

	var user models.User
	err = models.DB.First(&user, "name = ?", request.Name).Error
	if err != nil || !user.CheckPassword(request.Password) {
		loginLimiter.Failure(request.Name)

		// The response is the same for a missing user and a wrong
		// password, valid usernames must not be discoverable.
		e := errLoginInvalid.Error()
		c.JSON(http.StatusUnauthorized, LoginResponse{
			Error: &e,
		})
		return
	}

	token, err := tokens.Generate(user.ID)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusInternalServerError, LoginResponse{
			Error: &e,
		})
		return
	}

	loginLimiter.Success(request.Name)

	data := newUser(user)
	c.JSON(http.StatusOK, LoginResponse{
		Data: &LoginData{
			Token: token,
			User:  data,
		},
	})
}
