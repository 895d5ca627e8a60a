package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/httputil"
	"github.com/pkoka888/budget-control/internal/models"
	"github.com/pkoka888/budget-control/internal/recurring"
	"golang.org/x/exp/slices"
)

// RegisterRecurringTransactionRoutes registers the routes for recurring
// transactions with the RouterGroup that is passed.
func RegisterRecurringTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetRecurringTransactions)
		r.POST("", CreateRecurringTransactions)
	}

	r.OPTIONS("/detect", httputil.OptionsGet)
	r.GET("/detect", DetectRecurringTransactions)

	r.OPTIONS("/materialize", httputil.OptionsPost)
	r.POST("/materialize", MaterializeDueRecurringTransactions)

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetRecurringTransaction)
		r.PATCH("/:id", UpdateRecurringTransaction)
		r.DELETE("/:id", DeleteRecurringTransaction)
		r.OPTIONS("/:id/materialize", httputil.OptionsPost)
		r.POST("/:id/materialize", MaterializeRecurringTransaction)
	}
}

// @Summary		Create recurring transactions
// @Description	Creates new recurring transaction definitions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		201			{object}	RecurringTransactionCreateResponse
// @Failure		400			{object}	RecurringTransactionCreateResponse
// @Failure		404			{object}	RecurringTransactionCreateResponse
// @Failure		500			{object}	RecurringTransactionCreateResponse
// @Param			recurring	body		[]RecurringTransactionEditable	true	"Recurring transactions"
// @Router			/v1/recurring [post]
// @Security		BearerAuth
func CreateRecurringTransactions(c *gin.Context) {
	var editables []RecurringTransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringTransactionCreateResponse{}

	for _, editable := range editables {
		recurringTransaction := editable.model(auth.UserID(c))

		err = models.DB.Create(&recurringTransaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurringTransaction(recurringTransaction)
		r.Data = append(r.Data, RecurringTransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recurring transactions
// @Description	Returns a list of the user's recurring transaction definitions
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionListResponse
// @Failure		400	{object}	RecurringTransactionListResponse
// @Failure		500	{object}	RecurringTransactionListResponse
// @Router			/v1/recurring [get]
// @Security		BearerAuth
// @Param			account		query	string	false	"Filter by account ID"
// @Param			frequency	query	string	false	"Filter by frequency"
// @Param			active		query	bool	false	"Is the definition active?"
// @Param			offset		query	uint	false	"The offset of the first definition returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of definitions to return. Defaults to 50."
func GetRecurringTransactions(c *gin.Context) {
	var filter RecurringTransactionQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Order("datetime(next_due_date) ASC").
		Where("user_id = ?", auth.UserID(c)).
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 definitions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var recurringTransactions []models.RecurringTransaction
	err := q.Find(&recurringTransactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]RecurringTransaction, 0, len(recurringTransactions))
	for _, recurringTransaction := range recurringTransactions {
		data = append(data, newRecurringTransaction(recurringTransaction))
	}

	c.JSON(http.StatusOK, RecurringTransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Detect recurring patterns
// @Description	Scans the transaction history for recurring series and returns candidates
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200				{object}	RecurringDetectResponse
// @Failure		400				{object}	RecurringDetectResponse
// @Failure		500				{object}	RecurringDetectResponse
// @Param			minOccurrences	query		int	false	"Minimum number of transactions for a candidate. Defaults to 3."
// @Param			lookbackDays	query		int	false	"How far back transactions are scanned. Defaults to 365."
// @Router			/v1/recurring/detect [get]
// @Security		BearerAuth
func DetectRecurringTransactions(c *gin.Context) {
	var query RecurringDetectQuery

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&query)

	candidates, err := recurring.Detect(models.DB, auth.UserID(c), recurring.Options{
		MinOccurrences: query.MinOccurrences,
		LookbackDays:   query.LookbackDays,
	})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringDetectResponse{
			Error: &e,
		})
		return
	}

	c.JSON(http.StatusOK, RecurringDetectResponse{Data: candidates})
}

// @Summary		Materialize due recurring transactions
// @Description	Creates transactions for every active definition that is due and advances their due dates
// @Tags			RecurringTransactions
// @Produce		json
// @Success		201	{object}	RecurringMaterializeResponse
// @Success		200	{object}	RecurringMaterializeResponse
// @Failure		500	{object}	RecurringMaterializeResponse
// @Router			/v1/recurring/materialize [post]
// @Security		BearerAuth
func MaterializeDueRecurringTransactions(c *gin.Context) {
	created, errs := recurring.MaterializeDue(models.DB, auth.UserID(c), time.Now().In(time.UTC))

	r := RecurringMaterializeResponse{
		Data:   make([]Transaction, 0, len(created)),
		Errors: make([]string, 0, len(errs)),
	}

	for _, transaction := range created {
		r.Data = append(r.Data, newTransaction(transaction))
	}

	for _, err := range errs {
		r.Errors = append(r.Errors, err.Error())
	}

	code := http.StatusOK
	if len(created) > 0 {
		code = http.StatusCreated
	}

	c.JSON(code, r)
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction definition
// @Tags			RecurringTransactions
// @Produce		json
// @Success		200	{object}	RecurringTransactionResponse
// @Failure		400	{object}	RecurringTransactionResponse
// @Failure		404	{object}	RecurringTransactionResponse
// @Failure		500	{object}	RecurringTransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id} [get]
// @Security		BearerAuth
func GetRecurringTransaction(c *gin.Context) {
	recurringTransaction, err := getUserResource[models.RecurringTransaction](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	data := newRecurringTransaction(recurringTransaction)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &data})
}

// @Summary		Update recurring transaction
// @Description	Update an existing definition. Only values to be updated need to be specified.
// @Tags			RecurringTransactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecurringTransactionResponse
// @Failure		400			{object}	RecurringTransactionResponse
// @Failure		404			{object}	RecurringTransactionResponse
// @Failure		500			{object}	RecurringTransactionResponse
// @Param			id			path		URIID							true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurring	body		RecurringTransactionEditable	true	"Recurring transaction"
// @Router			/v1/recurring/{id} [patch]
// @Security		BearerAuth
func UpdateRecurringTransaction(c *gin.Context) {
	recurringTransaction, err := getUserResource[models.RecurringTransaction](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RecurringTransactionEditable{})
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	var data RecurringTransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	err = models.DB.Model(&recurringTransaction).Select("", updateFields...).Updates(data.model(recurringTransaction.UserID)).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringTransactionResponse{
			Error: &e,
		})
		return
	}

	r := newRecurringTransaction(recurringTransaction)
	c.JSON(http.StatusOK, RecurringTransactionResponse{Data: &r})
}

// @Summary		Deactivate recurring transaction
// @Description	Deactivates a definition. The definition is kept so that references to it survive.
// @Tags			RecurringTransactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id} [delete]
// @Security		BearerAuth
func DeleteRecurringTransaction(c *gin.Context) {
	recurringTransaction, err := getUserResource[models.RecurringTransaction](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Model(&recurringTransaction).Select("Active").Updates(models.RecurringTransaction{Active: false}).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Materialize recurring transaction
// @Description	Creates the next transaction for the definition and advances its due date
// @Tags			RecurringTransactions
// @Produce		json
// @Success		201	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id}/materialize [post]
// @Security		BearerAuth
func MaterializeRecurringTransaction(c *gin.Context) {
	recurringTransaction, err := getUserResource[models.RecurringTransaction](c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	transaction, err := recurring.Materialize(models.DB, &recurringTransaction)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &e,
		})
		return
	}

	data := newTransaction(transaction)
	c.JSON(http.StatusCreated, TransactionResponse{Data: &data})
}
