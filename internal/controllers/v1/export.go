package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/export"
	"github.com/pkoka888/budget-control/internal/httputil"
	"github.com/pkoka888/budget-control/internal/models"
)

type ExportQuery struct {
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // Transactions at or after this date
	UntilDate time.Time `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Transactions before this date
}

// RegisterExportRoutes registers the routes for exports with
// the RouterGroup that is passed.
func RegisterExportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/csv", httputil.OptionsGet)
	r.GET("/csv", ExportCSV)

	r.OPTIONS("/xlsx", httputil.OptionsGet)
	r.GET("/xlsx", ExportXLSX)
}

// @Summary		Export transactions as CSV
// @Description	Streams the user's transactions as a CSV file
// @Tags			Export
// @Produce		text/csv
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			fromDate	query		string	false	"Transactions at or after this date (YYYY-MM-DD)"
// @Param			untilDate	query		string	false	"Transactions before this date (YYYY-MM-DD)"
// @Router			/v1/export/csv [get]
// @Security		BearerAuth
func ExportCSV(c *gin.Context) {
	var query ExportQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	filename := fmt.Sprintf("transactions-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	err := export.CSV(models.DB, c.Writer, auth.UserID(c), query.FromDate, query.UntilDate)
	if err != nil {
		// Headers might already be written, all we can do is abort
		_ = c.AbortWithError(http.StatusInternalServerError, err)
	}
}

// @Summary		Export transactions as XLSX
// @Description	Streams the user's transactions as a styled Excel workbook
// @Tags			Export
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			fromDate	query		string	false	"Transactions at or after this date (YYYY-MM-DD)"
// @Param			untilDate	query		string	false	"Transactions before this date (YYYY-MM-DD)"
// @Router			/v1/export/xlsx [get]
// @Security		BearerAuth
func ExportXLSX(c *gin.Context) {
	var query ExportQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	err := export.XLSX(models.DB, c.Writer, auth.UserID(c), query.FromDate, query.UntilDate)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
	}
}
