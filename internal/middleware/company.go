package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/mma_accounts/internal/core/scope"
)

const (
	// CompanyHeader names the company the request acts for.
	CompanyHeader = "X-Company-ID"
	// AllowedCompaniesHeader lists further companies whose records the request may see.
	AllowedCompaniesHeader = "X-Allowed-Company-IDs"
)

// CompanyContext reads the company environment headers into the request context.
// Requests without an active company are rejected.
func CompanyContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		companyID := strings.TrimSpace(c.GetHeader(CompanyHeader))
		if companyID == "" {
			logger.Warn("Company header missing")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": CompanyHeader + " header required"})
			return
		}

		var allowed []string
		for _, id := range strings.Split(c.GetHeader(AllowedCompaniesHeader), ",") {
			if id = strings.TrimSpace(id); id != "" {
				allowed = append(allowed, id)
			}
		}

		ctx := scope.WithActiveCompany(c.Request.Context(), companyID)
		ctx = scope.WithAllowedCompanies(ctx, allowed)
		ctx = WithLogger(ctx, logger.With(slog.String("company_id", companyID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
