package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/application/usecase/accounting"
	"github.com/ledgerly/backend/internal/application/usecase/analytics"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles reporting endpoints. Figures are derived
// from the session snapshot; nothing here reads the store.
type ReportController struct {
	aggregator *accounting.Aggregator
}

// NewReportController creates a new report controller instance.
func NewReportController(aggregator *accounting.Aggregator) *ReportController {
	return &ReportController{
		aggregator: aggregator,
	}
}

// Summary handles GET /reports/summary requests.
func (c *ReportController) Summary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	snapshot := c.aggregator.Snapshot(ctx.Request.Context(), userID)
	summary := analytics.Summarize(snapshot.Transactions)

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(summary, snapshot.Loading))
}

// Breakdown handles GET /reports/breakdown requests.
func (c *ReportController) Breakdown(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	snapshot := c.aggregator.Snapshot(ctx.Request.Context(), userID)
	slices := analytics.ExpenseBreakdown(snapshot.Transactions)

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(slices, snapshot.Loading))
}
