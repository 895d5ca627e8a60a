package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkoka888/budget-control/internal/alerts"
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/httputil"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// RegisterBudgetAlertRoutes registers the routes for budget alerts with
// the RouterGroup that is passed.
func RegisterBudgetAlertRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", GetBudgetAlerts)
	}

	r.OPTIONS("/generate", httputil.OptionsPost)
	r.POST("/generate", GenerateBudgetAlerts)

	r.OPTIONS("/stats", httputil.OptionsGet)
	r.GET("/stats", GetBudgetAlertStats)

	// Alert with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGet)
		r.GET("/:id", GetBudgetAlert)
		r.OPTIONS("/:id/acknowledge", httputil.OptionsPost)
		r.POST("/:id/acknowledge", AcknowledgeBudgetAlert)
		r.OPTIONS("/:id/dismiss", httputil.OptionsPost)
		r.POST("/:id/dismiss", DismissBudgetAlert)
	}
}

// @Summary		Get budget alerts
// @Description	Returns a list of the user's budget alerts
// @Tags			BudgetAlerts
// @Produce		json
// @Success		200	{object}	BudgetAlertListResponse
// @Failure		400	{object}	BudgetAlertListResponse
// @Failure		500	{object}	BudgetAlertListResponse
// @Router			/v1/budget-alerts [get]
// @Security		BearerAuth
// @Param			budget	query	string	false	"Filter by budget ID"
// @Param			status	query	string	false	"Filter by alert status"
// @Param			offset	query	uint	false	"The offset of the first alert returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of alerts to return. Defaults to 50."
func GetBudgetAlerts(c *gin.Context) {
	var filter BudgetAlertQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("datetime(created_at) DESC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 alerts and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var alertModels []models.BudgetAlert
	err := q.Find(&alertModels).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetAlertListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetAlertListResponse{
			Error: &e,
		})
		return
	}

	data := make([]BudgetAlert, 0, len(alertModels))
	for _, alert := range alertModels {
		data = append(data, newBudgetAlert(alert))
	}

	c.JSON(http.StatusOK, BudgetAlertListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Generate budget alerts
// @Description	Evaluates all active budgets for the month and creates alerts for newly crossed thresholds
// @Tags			BudgetAlerts
// @Produce		json
// @Success		201		{object}	BudgetAlertGenerateResponse
// @Success		200		{object}	BudgetAlertGenerateResponse
// @Failure		400		{object}	BudgetAlertGenerateResponse
// @Failure		500		{object}	BudgetAlertGenerateResponse
// @Param			month	query		string	false	"Month to evaluate (YYYY-MM). Defaults to the current month."
// @Router			/v1/budget-alerts/generate [post]
// @Security		BearerAuth
func GenerateBudgetAlerts(c *gin.Context) {
	month, err := monthFromQuery(c)
	if err != nil {
		if !errors.Is(err, errMonthNotSetInQuery) {
			e := err.Error()
			c.JSON(http.StatusBadRequest, BudgetAlertGenerateResponse{
				Error: &e,
			})
			return
		}

		// Without an explicit month the current one is evaluated
		month = types.MonthOf(time.Now())
	}

	userID := auth.UserID(c)
	result := alerts.Generate(models.DB, userID, month)

	r := BudgetAlertGenerateResponse{
		Data:   make([]BudgetAlert, 0, len(result.Created)),
		Errors: make([]string, 0, len(result.Errors)),
	}

	for _, alert := range result.Created {
		r.Data = append(r.Data, newBudgetAlert(alert))
		notifyBudgetAlert(alert)
	}

	for _, err := range result.Errors {
		r.Errors = append(r.Errors, err.Error())
	}

	// Created alerts win over per-budget errors for the status code
	code := http.StatusOK
	if len(result.Created) > 0 {
		code = http.StatusCreated
	}

	c.JSON(code, r)
}

// notifyBudgetAlert sends the email notification for a new alert. Failures
// are logged, they never fail the request.
func notifyBudgetAlert(alert models.BudgetAlert) {
	var user models.User
	if err := models.DB.First(&user, "id = ?", alert.UserID).Error; err != nil {
		log.Error().Err(err).Msg("could not load user for alert notification")
		return
	}

	var budget models.Budget
	if err := models.DB.First(&budget, "id = ?", alert.BudgetID).Error; err != nil {
		log.Error().Err(err).Msg("could not load budget for alert notification")
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ?", budget.CategoryID).Error; err != nil {
		log.Error().Err(err).Msg("could not load category for alert notification")
		return
	}

	if err := notifier.BudgetAlert(user, alert, category.Name); err != nil {
		log.Error().Err(err).Msg("could not send alert notification")
	}
}

// @Summary		Get alert statistics
// @Description	Returns alert counts by status
// @Tags			BudgetAlerts
// @Produce		json
// @Success		200	{object}	BudgetAlertStatsResponse
// @Failure		500	{object}	BudgetAlertStatsResponse
// @Router			/v1/budget-alerts/stats [get]
// @Security		BearerAuth
func GetBudgetAlertStats(c *gin.Context) {
	stats, err := alerts.Statistics(models.DB, auth.UserID(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetAlertStatsResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, BudgetAlertStatsResponse{Data: &stats})
}

// @Summary		Get budget alert
// @Description	Returns a specific budget alert
// @Tags			BudgetAlerts
// @Produce		json
// @Success		200	{object}	BudgetAlertResponse
// @Failure		400	{object}	BudgetAlertResponse
// @Failure		404	{object}	BudgetAlertResponse
// @Failure		500	{object}	BudgetAlertResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-alerts/{id} [get]
// @Security		BearerAuth
func GetBudgetAlert(c *gin.Context) {
	alert, err := getUserResource[models.BudgetAlert](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetAlertResponse{
			Error: &e,
		})
		return
	}

	data := newBudgetAlert(alert)
	c.JSON(http.StatusOK, BudgetAlertResponse{Data: &data})
}

// @Summary		Acknowledge budget alert
// @Description	Marks an active alert as acknowledged
// @Tags			BudgetAlerts
// @Produce		json
// @Success		200	{object}	BudgetAlertResponse
// @Failure		400	{object}	BudgetAlertResponse
// @Failure		404	{object}	BudgetAlertResponse
// @Failure		500	{object}	BudgetAlertResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-alerts/{id}/acknowledge [post]
// @Security		BearerAuth
func AcknowledgeBudgetAlert(c *gin.Context) {
	transitionBudgetAlert(c, models.AlertStatusAcknowledged)
}

// @Summary		Dismiss budget alert
// @Description	Marks an active alert as dismissed
// @Tags			BudgetAlerts
// @Produce		json
// @Success		200	{object}	BudgetAlertResponse
// @Failure		400	{object}	BudgetAlertResponse
// @Failure		404	{object}	BudgetAlertResponse
// @Failure		500	{object}	BudgetAlertResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budget-alerts/{id}/dismiss [post]
// @Security		BearerAuth
func DismissBudgetAlert(c *gin.Context) {
	transitionBudgetAlert(c, models.AlertStatusDismissed)
}

func transitionBudgetAlert(c *gin.Context, to models.AlertStatus) {
	alert, err := getUserResource[models.BudgetAlert](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetAlertResponse{
			Error: &e,
		})
		return
	}

	err = alert.Transition(models.DB, to)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetAlertResponse{
			Error: &e,
		})
		return
	}

	data := newBudgetAlert(alert)
	c.JSON(http.StatusOK, BudgetAlertResponse{Data: &data})
}
