package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/SscSPs/client_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to the client directory.
type clientHandler struct {
	clientService      portssvc.ClientSvcFacade
	transactionService portssvc.TransactionReaderSvc
}

func newClientHandler(cs portssvc.ClientSvcFacade, ts portssvc.TransactionReaderSvc) *clientHandler {
	return &clientHandler{
		clientService:      cs,
		transactionService: ts,
	}
}

// RegisterClientRoutes registers routes related to clients.
func RegisterClientRoutes(rg *gin.RouterGroup, clientService portssvc.ClientSvcFacade, transactionService portssvc.TransactionReaderSvc) {
	h := newClientHandler(clientService, transactionService)

	clients := rg.Group("/clients")
	{
		clients.GET("", h.listClients)
		clients.POST("", h.createClient)
		clients.POST("/check-name", h.checkClientName)
		clients.GET("/:clientID", h.getClient)
		clients.PUT("/:clientID", h.updateClient)
		clients.DELETE("/:clientID", h.deleteClient)
		clients.GET("/:clientID/ledger", h.getClientLedger)
		clients.GET("/:clientID/transactions", h.listClientTransactions)
	}
}

// listClients godoc
// @Summary List clients
// @Description Lists clients ordered by last name, optionally filtered by status and a search term
// @Tags clients
// @Produce  json
// @Param   status query string false "Client status (New, Unpaid, Paid)"
// @Param   search query string false "Case-insensitive match on name or address"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list clients"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listClients(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListClientsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query params for ListClients", err)
		return
	}

	clients, err := h.clientService.ListClients(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list clients")
		return
	}

	logger.Debug("Clients listed", slog.Int("count", len(clients)))
	c.JSON(http.StatusOK, dto.ToListClientResponse(clients))
}

// createClient godoc
// @Summary Create a client
// @Description Registers a client with a zero balance and status New
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create client"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for CreateClient", err)
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// checkClientName godoc
// @Summary Check for a client with the same name
// @Description Reports clients already registered under the given first and last name. Never blocks creation.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   name body dto.CheckClientNameRequest true "Name to check"
// @Success 200 {object} dto.CheckClientNameResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to check client name"
// @Security BearerAuth
// @Router /clients/check-name [post]
func (h *clientHandler) checkClientName(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CheckClientNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for CheckClientName", err)
		return
	}

	matches, err := h.clientService.CheckClientName(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to check client name")
		return
	}

	c.JSON(http.StatusOK, dto.CheckClientNameResponse{
		Exists:  len(matches) > 0,
		Matches: dto.ToListClientResponse(matches),
	})
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to retrieve client"
// @Security BearerAuth
// @Router /clients/{clientID} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	client, err := h.clientService.GetClientByID(c.Request.Context(), clientID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("client_id", clientID)), err, "Failed to retrieve client")
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// updateClient godoc
// @Summary Update a client's profile
// @Description Changes name, title or address. Balance and status are derived and cannot be set.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Param   client body dto.UpdateClientRequest true "Fields to change"
// @Success 200 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to update client"
// @Security BearerAuth
// @Router /clients/{clientID} [put]
func (h *clientHandler) updateClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for UpdateClient", err)
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), clientID, req, middleware.ActorFromContext(c))
	if err != nil {
		respondWithError(c, logger.With(slog.String("client_id", clientID)), err, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// deleteClient godoc
// @Summary Delete a client
// @Description Deletes a client together with every transaction it owns
// @Tags clients
// @Param   clientID path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to delete client"
// @Security BearerAuth
// @Router /clients/{clientID} [delete]
func (h *clientHandler) deleteClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	if err := h.clientService.DeleteClient(c.Request.Context(), clientID); err != nil {
		respondWithError(c, logger.With(slog.String("client_id", clientID)), err, "Failed to delete client")
		return
	}

	c.Status(http.StatusNoContent)
}

// getClientLedger godoc
// @Summary Get a client's ledger
// @Description Returns the client, every transaction formatted for display, and the gross, paid and net totals
// @Tags clients
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /clients/{clientID}/ledger [get]
func (h *clientHandler) getClientLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	ledger, err := h.clientService.GetClientLedger(c.Request.Context(), clientID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("client_id", clientID)), err, "Failed to load ledger")
		return
	}

	c.JSON(http.StatusOK, dto.LedgerResponse{
		Client:        dto.ToClientResponse(&ledger.Client),
		Transactions:  dto.ToListTransactionResponse(ledger.Transactions),
		GrossAmount:   ledger.State.GrossAmount,
		TotalPayments: ledger.State.TotalPayments,
		NetBalance:    ledger.State.NetBalance,
	})
}

// listClientTransactions godoc
// @Summary List a client's transactions
// @Description Newest first, by date then job-order number
// @Tags clients
// @Produce  json
// @Param   clientID path string true "Client ID"
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Client not found"
// @Failure 500 {object} map[string]string "Failed to list transactions"
// @Security BearerAuth
// @Router /clients/{clientID}/transactions [get]
func (h *clientHandler) listClientTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("client_id", c.Param("clientID")))
	clientID := c.Param("clientID")

	if _, err := h.clientService.GetClientByID(c.Request.Context(), clientID); err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	txns, err := h.transactionService.ListClientTransactions(c.Request.Context(), clientID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(txns))
}
