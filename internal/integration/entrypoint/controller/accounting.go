package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/application/usecase/accounting"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
)

// AccountingController handles accounting session endpoints.
type AccountingController struct {
	aggregator *accounting.Aggregator
}

// NewAccountingController creates a new accounting controller instance.
func NewAccountingController(aggregator *accounting.Aggregator) *AccountingController {
	return &AccountingController{
		aggregator: aggregator,
	}
}

// Refresh handles POST /accounting/refresh requests.
// It reloads the user's categories and transactions from the store.
func (c *AccountingController) Refresh(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	c.aggregator.RefreshData(ctx.Request.Context(), userID)

	ctx.Status(http.StatusNoContent)
}

// DeleteSession handles DELETE /accounting/session requests.
// It discards the user's session so the next access starts from a
// fresh load. Called on sign-out.
func (c *AccountingController) DeleteSession(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	c.aggregator.Deactivate(userID)

	ctx.Status(http.StatusNoContent)
}
