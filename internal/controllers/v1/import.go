package v1

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/httputil"
	"github.com/pkoka888/budget-control/internal/importer"
	"github.com/pkoka888/budget-control/internal/importer/parser/bankcsv"
	"github.com/pkoka888/budget-control/internal/importer/parser/bankjson"
	"github.com/pkoka888/budget-control/internal/models"
	ez_uuid "github.com/pkoka888/budget-control/internal/uuid"
)

type ImportPreviewQuery struct {
	AccountID ez_uuid.UUID `form:"accountId" binding:"required"` // ID of the account to import the transactions for
}

// TransactionPreview is a transaction that has been parsed from an import
// file but not yet saved.
type TransactionPreview struct {
	Transaction             Transaction `json:"transaction"`             // The transaction as it would be created
	DuplicateTransactionIDs []uuid.UUID `json:"duplicateTransactionIds"` // IDs of existing transactions with the same import hash
	MatchRuleID             uuid.UUID   `json:"matchRuleId"`             // ID of the match rule that set the category, if any
}

func newTransactionPreview(preview importer.TransactionPreview) TransactionPreview {
	return TransactionPreview{
		Transaction:             newTransaction(preview.Transaction),
		DuplicateTransactionIDs: preview.DuplicateTransactionIDs,
		MatchRuleID:             preview.MatchRuleID,
	}
}

type ImportPreviewList struct {
	Data  []TransactionPreview `json:"data"`                                                          // List of transaction previews
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/csv", httputil.OptionsPost)
	r.POST("/csv", ImportCSVPreview)

	r.OPTIONS("/json", httputil.OptionsPost)
	r.POST("/json", ImportJSONPreview)
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// @Summary		Transaction import preview (CSV)
// @Description	Returns a preview of transactions to be imported after parsing a bank export csv file
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200			{object}	ImportPreviewList
// @Failure		400			{object}	ImportPreviewList
// @Failure		404			{object}	ImportPreviewList
// @Failure		500			{object}	ImportPreviewList
// @Param			file		formData	file				true	"File to import"
// @Param			accountId	query		ImportPreviewQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import/csv [post]
// @Security		BearerAuth
func ImportCSVPreview(c *gin.Context) {
	importPreview(c, ".csv", bankcsv.Parse)
}

// @Summary		Transaction import preview (JSON)
// @Description	Returns a preview of transactions to be imported after parsing a bank export json file
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		200			{object}	ImportPreviewList
// @Failure		400			{object}	ImportPreviewList
// @Failure		404			{object}	ImportPreviewList
// @Failure		500			{object}	ImportPreviewList
// @Param			file		formData	file				true	"File to import"
// @Param			accountId	query		ImportPreviewQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import/json [post]
// @Security		BearerAuth
func ImportJSONPreview(c *gin.Context) {
	importPreview(c, ".json", bankjson.Parse)
}

func importPreview(c *gin.Context, suffix string, parse func(f io.Reader, account models.Account) ([]importer.TransactionPreview, error)) {
	var query ImportPreviewQuery
	err := c.BindQuery(&query)
	if err != nil {
		s := fmt.Errorf("accountId: %w", err).Error()
		c.JSON(http.StatusBadRequest, ImportPreviewList{
			Error: &s,
		})
		return
	}

	f, err := getUploadedFile(c, suffix)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewList{
			Error: &s,
		})
		return
	}

	userID := auth.UserID(c)

	// Verify that the account exists and belongs to the user
	var account models.Account
	err = models.DB.First(&account, "id = ? AND user_id = ?", query.AccountID.UUID, userID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewList{
			Error: &s,
		})
		return
	}

	previews, err := parse(f, account)
	if err != nil {
		// The parsers return usable errors already, no translation necessary
		s := err.Error()
		c.JSON(http.StatusBadRequest, ImportPreviewList{
			Error: &s,
		})
		return
	}

	rules, err := importer.Rules(models.DB, userID)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ImportPreviewList{
			Error: &s,
		})
		return
	}

	for i, preview := range previews {
		if len(rules) > 0 {
			importer.Match(&preview, rules)
		}

		importer.DuplicateTransactions(models.DB, &preview, userID)

		previews[i] = preview
	}

	data := make([]TransactionPreview, 0, len(previews))
	for _, preview := range previews {
		data = append(data, newTransactionPreview(preview))
	}

	c.JSON(http.StatusOK, ImportPreviewList{Data: data})
}
