package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
	"github.com/SscSPs/mma_accounts/internal/dto"
	"github.com/SscSPs/mma_accounts/internal/middleware"
	"github.com/SscSPs/mma_accounts/internal/utils/pagination"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournals)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.PUT("/:journalID", h.updateJournal)
	}
}

// createJournals godoc
// @Summary Create journals
// @Description Creates journals in the active company. Journals without an explicit code get one computed from their type.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   journals body dto.CreateJournalsRequest true "Journals to create"
// @Success 201 {array} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Journal code already used"
// @Failure 422 {object} map[string]string "No unused code could be generated"
// @Failure 500 {object} map[string]string "Failed to create journals"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	companyID, _ := scope.ActiveCompany(c.Request.Context())

	journals, err := h.journalService.CreateJournals(c.Request.Context(), req.ToJournalValues(companyID), creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journals")
		return
	}

	logger.Info("Journals created successfully", slog.Int("count", len(journals)))
	c.JSON(http.StatusCreated, dto.ToJournalResponses(journals))
}

// getJournal godoc
// @Summary Get a journal by ID
// @Tags journals
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Retrieves a page of the active company's journals, ordered by code
// @Tags journals
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	offset, err := pagination.DecodeOffsetToken(params.NextToken)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken"})
		return
	}

	journals, err := h.journalService.ListJournals(c.Request.Context(), params.Limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalsResponse{
		Journals:  dto.ToJournalResponses(journals),
		NextToken: pagination.NextToken(offset, params.Limit, len(journals)),
	})
}

// updateJournal godoc
// @Summary Update a journal
// @Description Updates a journal. Changing the type recomputes the code unless it was set explicitly; resetCode drops an explicit code.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   journalID path string true "Journal ID"
// @Param   journal body dto.UpdateJournalRequest true "Fields to update"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal code already used"
// @Failure 500 {object} map[string]string "Failed to update journal"
// @Security BearerAuth
// @Router /journals/{journalID} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), journalID, req.ToJournalUpdate(), userID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_id", journalID)), err, "Failed to update journal")
		return
	}
	logger.Info("Journal updated successfully", slog.String("journal_id", journalID), slog.String("code", journal.Code))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
