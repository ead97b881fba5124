package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/SscSPs/client_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler exposes the ledger mutations. Every write answers with
// the transaction and the owning client's recomputed balance and status.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// RegisterTransactionRoutes registers the job-order routes.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/next-jo-number", h.nextJobOrderNumber)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
	}
}

// createTransaction godoc
// @Summary Record a transaction
// @Description Allocates the next job-order number, stores the line items and recomputes the client's balance and status in one unit of work. A payment-only transaction must not exceed the outstanding balance.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionMutationResponse
// @Failure 400 {object} map[string]string "Invalid input or payment rejected"
// @Failure 404 {object} map[string]string "Client or particular not found"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for CreateTransaction", err)
		return
	}

	logger = logger.With(slog.String("client_id", req.ClientID))
	result, err := h.transactionService.CreateTransaction(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.TransactionMutationResponse{
		Transaction: dto.ToTransactionResponse(&result.Transaction),
		Client:      dto.ToClientSummary(&result.Client),
	})
}

// nextJobOrderNumber godoc
// @Summary Preview the next job-order number
// @Description Advisory only; the number is allocated when a transaction is created
// @Tags transactions
// @Produce  json
// @Success 200 {object} dto.NextJobOrderNumberResponse
// @Failure 500 {object} map[string]string "Failed to get next job order number"
// @Security BearerAuth
// @Router /transactions/next-jo-number [get]
func (h *transactionHandler) nextJobOrderNumber(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	next, err := h.transactionService.NextJobOrderNumber(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to get next job order number")
		return
	}
	c.JSON(http.StatusOK, dto.NextJobOrderNumberResponse{JONumber: next})
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to retrieve transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), c.Param("transactionID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Replace a transaction
// @Description Replaces the date, remarks and every line item. The job-order number and client never change.
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Param   transaction body dto.UpdateTransactionRequest true "Replacement content"
// @Success 200 {object} dto.TransactionMutationResponse
// @Failure 400 {object} map[string]string "Invalid input or payment rejected"
// @Failure 404 {object} map[string]string "Transaction or particular not found"
// @Failure 500 {object} map[string]string "Failed to update transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for UpdateTransaction", err)
		return
	}

	result, err := h.transactionService.UpdateTransaction(c.Request.Context(), transactionID, req, middleware.ActorFromContext(c))
	if err != nil {
		respondWithError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to update transaction")
		return
	}

	c.JSON(http.StatusOK, dto.TransactionMutationResponse{
		Transaction: dto.ToTransactionResponse(&result.Transaction),
		Client:      dto.ToClientSummary(&result.Client),
	})
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes the transaction and recomputes the client over what remains
// @Tags transactions
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.DeleteTransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	result, err := h.transactionService.DeleteTransaction(c.Request.Context(), transactionID, middleware.ActorFromContext(c))
	if err != nil {
		respondWithError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to delete transaction")
		return
	}

	c.JSON(http.StatusOK, dto.DeleteTransactionResponse{Client: dto.ToClientSummary(&result.Client)})
}
