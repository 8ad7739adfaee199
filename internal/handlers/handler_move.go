package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/dto"
	"github.com/SscSPs/mma_accounts/internal/middleware"
)

type moveHandler struct {
	moveService portssvc.MoveSvcFacade
}

func newMoveHandler(ms portssvc.MoveSvcFacade) *moveHandler {
	return &moveHandler{moveService: ms}
}

func registerMoveRoutes(rg *gin.RouterGroup, moveService portssvc.MoveSvcFacade) {
	h := newMoveHandler(moveService)

	moves := rg.Group("/moves")
	{
		moves.POST("", h.createMove)
		moves.GET("/:moveID", h.getMove)
		moves.PUT("/:moveID/references", h.updateReferences)
	}
}

// createMove godoc
// @Summary Record a move
// @Description Records a balanced move in one of the active company's journals
// @Tags moves
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   move body dto.CreateMoveRequest true "Move and its lines"
// @Success 201 {object} dto.MoveResponse
// @Failure 400 {object} map[string]string "Invalid input format or unbalanced lines"
// @Failure 404 {object} map[string]string "Journal or account not found"
// @Failure 500 {object} map[string]string "Failed to create move"
// @Security BearerAuth
// @Router /moves [post]
func (h *moveHandler) createMove(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMove", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	move, err := h.moveService.CreateMove(c.Request.Context(), req.ToDomainMove(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create move")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMoveResponse(move))
}

// getMove godoc
// @Summary Get a move by ID
// @Tags moves
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   moveID path string true "Move ID"
// @Success 200 {object} dto.MoveResponse
// @Failure 404 {object} map[string]string "Move not found"
// @Failure 500 {object} map[string]string "Failed to retrieve move"
// @Security BearerAuth
// @Router /moves/{moveID} [get]
func (h *moveHandler) getMove(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	move, err := h.moveService.GetMoveByID(c.Request.Context(), c.Param("moveID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve move")
		return
	}
	c.JSON(http.StatusOK, dto.ToMoveResponse(move))
}

// updateReferences godoc
// @Summary Update move references
// @Description Updates only the journal number and the invoice number of a move
// @Tags moves
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   moveID path string true "Move ID"
// @Param   references body dto.UpdateMoveReferencesRequest true "New references"
// @Success 200 {object} dto.MoveResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Move not found"
// @Failure 500 {object} map[string]string "Failed to update move"
// @Security BearerAuth
// @Router /moves/{moveID}/references [put]
func (h *moveHandler) updateReferences(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	moveID := c.Param("moveID")

	var req dto.UpdateMoveReferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateMoveReferences", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	move, err := h.moveService.UpdateMoveReferences(c.Request.Context(), moveID, req.NoJournal, req.InvoiceNo, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("move_id", moveID)), err, "Failed to update move")
		return
	}
	c.JSON(http.StatusOK, dto.ToMoveResponse(move))
}
