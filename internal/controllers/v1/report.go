package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/httputil"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/reports"
	"github.com/pkoka888/budget-control/internal/types"
)

// RegisterReportRoutes registers the routes for reports with
// the RouterGroup that is passed.
func RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/month", httputil.OptionsGet)
	r.GET("/month", GetMonthReport)

	r.OPTIONS("/year", httputil.OptionsGet)
	r.GET("/year", GetYearReport)

	r.OPTIONS("/year-over-year", httputil.OptionsGet)
	r.GET("/year-over-year", GetYearOverYearReport)
}

type MonthReportResponse struct {
	Data  *reports.MonthSummary `json:"data"`                                                  // The report
	Error *string               `json:"error" example:"the month query parameter must be set"` // The error, if any occurred
}

type YearReportResponse struct {
	Data  *reports.YearSummary `json:"data"`                                             // The report
	Error *string              `json:"error" example:"the year parameter is not valid"` // The error, if any occurred
}

type yearQuery struct {
	Year int `form:"year"`
}

type YearOverYearReportResponse struct {
	Data  *reports.YearOverYearSummary `json:"data"`                                                            // The report
	Error *string                      `json:"error" example:"the from and until query parameters must be set"` // The error, if any occurred
}

type yearOverYearQuery struct {
	From  string `form:"from"`
	Until string `form:"until"`
}

// @Summary		Get monthly report
// @Description	Returns income, expenses, category breakdown and the trend against the previous month
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	MonthReportResponse
// @Failure		400		{object}	MonthReportResponse
// @Failure		500		{object}	MonthReportResponse
// @Param			month	query		string	true	"Month to report on (YYYY-MM)"
// @Router			/v1/reports/month [get]
// @Security		BearerAuth
func GetMonthReport(c *gin.Context) {
	month, err := monthFromQuery(c)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, MonthReportResponse{
			Error: &e,
		})
		return
	}

	summary, err := reports.Month(models.DB, auth.UserID(c), month)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), MonthReportResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, MonthReportResponse{Data: &summary})
}

// @Summary		Get yearly report
// @Description	Returns monthly totals, the category breakdown and the trend against the previous year
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	YearReportResponse
// @Failure		400		{object}	YearReportResponse
// @Failure		500		{object}	YearReportResponse
// @Param			year	query		int	true	"Year to report on"
// @Router			/v1/reports/year [get]
// @Security		BearerAuth
func GetYearReport(c *gin.Context) {
	var query yearQuery

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&query)

	if query.Year < 1 {
		e := errYearInvalid.Error()
		c.JSON(http.StatusBadRequest, YearReportResponse{
			Error: &e,
		})
		return
	}

	summary, err := reports.Year(models.DB, auth.UserID(c), query.Year)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), YearReportResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, YearReportResponse{Data: &summary})
}

// @Summary		Get year-over-year report
// @Description	Compares the expenses of a month range against the same range one year earlier
// @Tags			Reports
// @Produce		json
// @Success		200		{object}	YearOverYearReportResponse
// @Failure		400		{object}	YearOverYearReportResponse
// @Failure		500		{object}	YearOverYearReportResponse
// @Param			from	query		string	true	"First month of the range (YYYY-MM)"
// @Param			until	query		string	true	"Last month of the range, inclusive (YYYY-MM)"
// @Router			/v1/reports/year-over-year [get]
// @Security		BearerAuth
func GetYearOverYearReport(c *gin.Context) {
	var query yearOverYearQuery

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&query)

	if query.From == "" || query.Until == "" {
		e := errRangeNotSetInQuery.Error()
		c.JSON(http.StatusBadRequest, YearOverYearReportResponse{
			Error: &e,
		})
		return
	}

	from, err := types.ParseMonth(query.From)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, YearOverYearReportResponse{
			Error: &e,
		})
		return
	}

	until, err := types.ParseMonth(query.Until)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, YearOverYearReportResponse{
			Error: &e,
		})
		return
	}

	summary, err := reports.YearOverYear(models.DB, auth.UserID(c), from, until)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), YearOverYearReportResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, YearOverYearReportResponse{Data: &summary})
}
