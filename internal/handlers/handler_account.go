package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/mma_accounts/internal/core/allocator"
	portssvc "github.com/SscSPs/mma_accounts/internal/core/ports/services"
	"github.com/SscSPs/mma_accounts/internal/core/scope"
	"github.com/SscSPs/mma_accounts/internal/dto"
	"github.com/SscSPs/mma_accounts/internal/middleware"
	"github.com/SscSPs/mma_accounts/internal/utils/pagination"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccounts)
		accounts.PATCH("", h.writeAccounts)
		accounts.GET("", h.listAccounts)
		accounts.POST("/copy", h.copyAccounts)
		accounts.POST("/check-names", h.checkNames)
		accounts.POST("/check-codes", h.checkCodes)
		accounts.POST("/new-name", h.newName)
		accounts.POST("/new-code", h.newCode)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
	}
}

// createAccounts godoc
// @Summary Create accounts
// @Description Creates a batch of accounts in the active company. The batch fails as a whole when a name or code is missing or already used in a company's scope.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   accounts body dto.CreateAccountsRequest true "Accounts to create"
// @Success 201 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "No unused code could be generated"
// @Failure 500 {object} map[string]string "Failed to create accounts"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create accounts", slog.Int("count", len(req.Accounts)))

	accounts, err := h.accountService.CreateAccounts(c.Request.Context(), req.ToAccountValues(), creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create accounts")
		return
	}

	logger.Info("Accounts created successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusCreated, dto.ToListAccountResponse(accounts))
}

// writeAccounts godoc
// @Summary Update several accounts
// @Description Applies the same update to every listed account. With deferChecks the uniqueness checks are skipped and can be run later through check-names and check-codes.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   update body dto.WriteAccountsRequest true "Accounts and fields to update"
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update accounts"
// @Security BearerAuth
// @Router /accounts [patch]
func (h *accountHandler) writeAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WriteAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for WriteAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("updater_user_id", userID))

	ctx := c.Request.Context()
	if req.DeferChecks {
		ctx = scope.WithDeferredChecks(ctx)
	}

	accounts, err := h.accountService.WriteAccounts(ctx, req.AccountIDs, req.ToAccountUpdate(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update accounts")
		return
	}

	logger.Info("Accounts updated successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Updates a single account
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   accountID path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{accountID} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}
	logger = logger.With(slog.String("target_account_id", accountID))

	ctx := c.Request.Context()
	if req.DeferChecks {
		ctx = scope.WithDeferredChecks(ctx)
	}

	accounts, err := h.accountService.WriteAccounts(ctx, []string{accountID}, req.ToAccountUpdate(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, dto.ToAccountResponse(&accounts[0]))
}

// copyAccounts godoc
// @Summary Copy accounts
// @Description Duplicates accounts under the next unused code and name
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   accounts body dto.AccountIDsRequest true "Accounts to copy"
// @Success 201 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "No unused code or name could be generated"
// @Failure 500 {object} map[string]string "Failed to copy accounts"
// @Security BearerAuth
// @Router /accounts/copy [post]
func (h *accountHandler) copyAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AccountIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CopyAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	copies, err := h.accountService.CopyAccounts(c.Request.Context(), req.AccountIDs, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to copy accounts")
		return
	}

	logger.Info("Accounts copied successfully", slog.Int("count", len(copies)))
	c.JSON(http.StatusCreated, dto.ToListAccountResponse(copies))
}

// checkNames godoc
// @Summary Check account names
// @Description Fails when a listed account has no name or shares its name with another account of its scope
// @Tags accounts
// @Accept  json
// @Param   X-Company-ID header string true "Active company"
// @Param   accounts body dto.AccountIDsRequest true "Accounts to check"
// @Success 204 "Names are unique"
// @Failure 400 {object} map[string]string "Name missing or duplicated"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/check-names [post]
func (h *accountHandler) checkNames(c *gin.Context) {
	h.runCheck(c, h.accountService.EnsureNameIsUnique, "Failed to check account names")
}

// checkCodes godoc
// @Summary Check account codes
// @Description Fails when a listed account has no code or shares its code with another account of its scope
// @Tags accounts
// @Accept  json
// @Param   X-Company-ID header string true "Active company"
// @Param   accounts body dto.AccountIDsRequest true "Accounts to check"
// @Success 204 "Codes are unique"
// @Failure 400 {object} map[string]string "Code missing or duplicated"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/check-codes [post]
func (h *accountHandler) checkCodes(c *gin.Context) {
	h.runCheck(c, h.accountService.EnsureCodeIsUnique, "Failed to check account codes")
}

func (h *accountHandler) runCheck(c *gin.Context, check func(ctx context.Context, accountIDs []string) error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AccountIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for account check", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if err := check(c.Request.Context(), req.AccountIDs); err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	c.Status(http.StatusNoContent)
}

// newName godoc
// @Summary Suggest an account name
// @Description Returns the first of start, start.copy, start.copy2... that is neither claimed nor used in the active company's scope. Start is claimed unless claimed is given
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   request body dto.NewNameRequest true "Starting value"
// @Success 200 {object} dto.NewNameResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 422 {object} map[string]string "No unused name could be generated"
// @Security BearerAuth
// @Router /accounts/new-name [post]
func (h *accountHandler) newName(c *gin.Context) {
	h.allocate(c, h.accountService.NewAccountName, "Failed to generate account name")
}

// newCode godoc
// @Summary Suggest an account code
// @Description Returns the first code derived from start that is neither claimed nor used in the active company's scope. Start is claimed unless claimed is given
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   request body dto.NewNameRequest true "Starting value"
// @Success 200 {object} dto.NewNameResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 422 {object} map[string]string "No unused code could be generated"
// @Security BearerAuth
// @Router /accounts/new-code [post]
func (h *accountHandler) newCode(c *gin.Context) {
	h.allocate(c, h.accountService.NewAccountCode, "Failed to generate account code")
}

func (h *accountHandler) allocate(c *gin.Context, next func(ctx context.Context, start string, claimed allocator.Claims) (string, error), fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.NewNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for allocation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	var claimed allocator.Claims
	if req.Claimed != nil {
		claimed = allocator.NewClaims(req.Claimed...)
	}
	value, err := next(c.Request.Context(), req.Start, claimed)
	if err != nil {
		respondError(c, logger, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.NewNameResponse{Value: value})
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves an account visible from the request's companies
// @Tags accounts
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{accountID} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")
	logger = logger.With(slog.String("target_account_id", accountID))

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a page of the accounts of the allowed companies, ordered by code
// @Tags accounts
// @Produce  json
// @Param   X-Company-ID header string true "Active company"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token of the next page"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	offset, err := pagination.DecodeOffsetToken(params.NextToken)
	if err != nil {
		logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid nextToken"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{
		Accounts:  dto.ToListAccountResponse(accounts),
		NextToken: pagination.NextToken(offset, params.Limit, len(accounts)),
	})
}
