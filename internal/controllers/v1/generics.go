package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkoka888/budget-control/internal/auth"
	"github.com/pkoka888/budget-control/internal/models"
)

// userResource is the set of resources that are owned by exactly one user.
type userResource interface {
	models.Account | models.Category | models.Transaction | models.Budget |
		models.BudgetAlert | models.RecurringTransaction | models.Goal | models.MatchRule
}

// getUserResource binds the ID from the URI and loads the resource,
// scoped to the authenticated user.
//
// Resources of other users are reported as not found so that resource IDs
// are not discoverable across users.
func getUserResource[R userResource](c *gin.Context) (R, error) {
	var resource R

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return resource, err
	}

	err = models.DB.First(&resource, "id = ? AND user_id = ?", uri.ID.UUID, auth.UserID(c)).Error
	if err != nil {
		return resource, err
	}

	return resource, nil
}

// deleteUserResource loads the resource scoped to the authenticated user
// and deletes it.
func deleteUserResource[R userResource](c *gin.Context) {
	resource, err := getUserResource[R](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&resource).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
