package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/client_ledger/internal/core/ports/services"
	"github.com/SscSPs/client_ledger/internal/dto"
	"github.com/SscSPs/client_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type particularHandler struct {
	particularService portssvc.ParticularSvcFacade
}

// RegisterParticularRoutes registers the catalog routes.
func RegisterParticularRoutes(rg *gin.RouterGroup, particularService portssvc.ParticularSvcFacade) {
	h := &particularHandler{particularService: particularService}

	particulars := rg.Group("/particulars")
	{
		particulars.GET("", h.listParticulars)
		particulars.POST("", h.createParticular)
		particulars.GET("/:particularID", h.getParticular)
		particulars.DELETE("/:particularID", h.deleteParticular)
	}
}

// listParticulars godoc
// @Summary List catalog entries
// @Tags particulars
// @Produce  json
// @Param   type query string false "Particular type (Service, Payment)"
// @Success 200 {array} dto.ParticularResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list particulars"
// @Security BearerAuth
// @Router /particulars [get]
func (h *particularHandler) listParticulars(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParticularsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query params for ListParticulars", err)
		return
	}

	particulars, err := h.particularService.ListParticulars(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list particulars")
		return
	}
	c.JSON(http.StatusOK, dto.ToListParticularResponse(particulars))
}

// createParticular godoc
// @Summary Create a catalog entry
// @Description Names are unique per type, ignoring case
// @Tags particulars
// @Accept  json
// @Produce  json
// @Param   particular body dto.CreateParticularRequest true "Catalog entry"
// @Success 201 {object} dto.ParticularResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Name already used for this type"
// @Failure 500 {object} map[string]string "Failed to create particular"
// @Security BearerAuth
// @Router /particulars [post]
func (h *particularHandler) createParticular(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateParticularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for CreateParticular", err)
		return
	}

	particular, err := h.particularService.CreateParticular(c.Request.Context(), req, middleware.ActorFromContext(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to create particular")
		return
	}
	c.JSON(http.StatusCreated, dto.ToParticularResponse(particular))
}

// getParticular godoc
// @Summary Get a catalog entry
// @Tags particulars
// @Produce  json
// @Param   particularID path string true "Particular ID"
// @Success 200 {object} dto.ParticularResponse
// @Failure 404 {object} map[string]string "Particular not found"
// @Failure 500 {object} map[string]string "Failed to retrieve particular"
// @Security BearerAuth
// @Router /particulars/{particularID} [get]
func (h *particularHandler) getParticular(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	particular, err := h.particularService.GetParticularByID(c.Request.Context(), c.Param("particularID"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve particular")
		return
	}
	c.JSON(http.StatusOK, dto.ToParticularResponse(particular))
}

// deleteParticular godoc
// @Summary Delete a catalog entry
// @Description Recorded line items keep the name and kind they were written with
// @Tags particulars
// @Param   particularID path string true "Particular ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Particular not found"
// @Failure 500 {object} map[string]string "Failed to delete particular"
// @Security BearerAuth
// @Router /particulars/{particularID} [delete]
func (h *particularHandler) deleteParticular(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.particularService.DeleteParticular(c.Request.Context(), c.Param("particularID")); err != nil {
		respondWithError(c, logger, err, "Failed to delete particular")
		return
	}
	c.Status(http.StatusNoContent)
}
