package controller

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerly/backend/internal/application/usecase/assistant"
	domainerror "github.com/ledgerly/backend/internal/domain/error"
	"github.com/ledgerly/backend/internal/integration/entrypoint/dto"
	"github.com/ledgerly/backend/internal/integration/entrypoint/middleware"
)

// AssistantController handles AI assistant endpoints.
type AssistantController struct {
	sendMessageUseCase  *assistant.SendMessageUseCase
	parseReceiptUseCase *assistant.ParseReceiptUseCase
	getHistoryUseCase   *assistant.GetHistoryUseCase
	clearHistoryUseCase *assistant.ClearHistoryUseCase
}

// NewAssistantController creates a new assistant controller instance.
func NewAssistantController(
	sendMessageUseCase *assistant.SendMessageUseCase,
	parseReceiptUseCase *assistant.ParseReceiptUseCase,
	getHistoryUseCase *assistant.GetHistoryUseCase,
	clearHistoryUseCase *assistant.ClearHistoryUseCase,
) *AssistantController {
	return &AssistantController{
		sendMessageUseCase:  sendMessageUseCase,
		parseReceiptUseCase: parseReceiptUseCase,
		getHistoryUseCase:   getHistoryUseCase,
		clearHistoryUseCase: clearHistoryUseCase,
	}
}

// Chat handles POST /assistant/chat requests.
// Upstream AI failures still produce a 200; the reply body carries the
// apology text so the conversation keeps going.
func (c *AssistantController) Chat(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyMessage),
		})
		return
	}

	output, err := c.sendMessageUseCase.Execute(ctx.Request.Context(), assistant.SendMessageInput{
		UserID:  userID,
		Message: req.Message,
	})
	if err != nil {
		c.handleAssistantError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatResponse{
		Reply: dto.ToChatMessageResponse(output.Reply),
	})
}

// Receipt handles POST /assistant/receipt requests.
// The extracted fields come back for the user to confirm; the actual
// transaction is created through the ordinary POST /transactions.
func (c *AssistantController) Receipt(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ParseReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingReceiptImage),
		})
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Image data must be base64 encoded",
			Code:  string(domainerror.ErrCodeMissingReceiptImage),
		})
		return
	}

	output, err := c.parseReceiptUseCase.Execute(ctx.Request.Context(), assistant.ParseReceiptInput{
		UserID:    userID,
		ImageData: imageData,
	})
	if err != nil {
		c.handleAssistantError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(output.Receipt))
}

// GetHistory handles GET /assistant/history requests.
func (c *AssistantController) GetHistory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	messages, err := c.getHistoryUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve chat history",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToChatHistoryResponse(messages))
}

// ClearHistory handles DELETE /assistant/history requests.
func (c *AssistantController) ClearHistory(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	if err := c.clearHistoryUseCase.Execute(ctx.Request.Context(), userID); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to clear chat history",
		})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleAssistantError maps assistant errors to HTTP responses.
func (c *AssistantController) handleAssistantError(ctx *gin.Context, err error) {
	var astErr *domainerror.AssistantError
	if errors.As(err, &astErr) {
		statusCode := c.getStatusCodeForAssistantError(astErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: astErr.Message,
			Code:  string(astErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAssistantError maps assistant error codes to HTTP status codes.
func (c *AssistantController) getStatusCodeForAssistantError(code domainerror.AssistantErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmptyMessage,
		domainerror.ErrCodeMissingReceiptImage:
		return http.StatusBadRequest
	case domainerror.ErrCodeReceiptParseFailed:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeAssistantUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
