package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/application/usecase/accounting"
	"github.com/ledgerly/backend/internal/application/usecase/export"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
)

// ExportController handles data export endpoints.
type ExportController struct {
	aggregator *accounting.Aggregator
}

// NewExportController creates a new export controller instance.
func NewExportController(aggregator *accounting.Aggregator) *ExportController {
	return &ExportController{
		aggregator: aggregator,
	}
}

// TransactionsCSV handles GET /export/transactions.csv requests.
func (c *ExportController) TransactionsCSV(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	snapshot := c.aggregator.Snapshot(ctx.Request.Context(), userID)
	document := export.TransactionsCSV(snapshot.Transactions)

	filename := "transactions-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(document))
}

// TransactionsJSON handles GET /export/transactions.json requests.
func (c *ExportController) TransactionsJSON(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	snapshot := c.aggregator.Snapshot(ctx.Request.Context(), userID)
	document := export.TransactionsJSON(snapshot.Transactions, time.Now().UTC())

	ctx.JSON(http.StatusOK, document)
}

// CategoriesJSON handles GET /export/categories.json requests.
func (c *ExportController) CategoriesJSON(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	snapshot := c.aggregator.Snapshot(ctx.Request.Context(), userID)
	document := export.CategoriesJSON(snapshot.Categories, time.Now().UTC())

	ctx.JSON(http.StatusOK, document)
}
