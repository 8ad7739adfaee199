// Package scope threads the company environment of a request through nested
// calls: the active company, the companies the caller may see, and the flags
// that defer uniqueness checks or lift visibility restrictions.
package scope

import "context"

type contextKey string

const (
	activeCompanyKey    = contextKey("activeCompany")
	allowedCompaniesKey = contextKey("allowedCompanies")
	deferChecksKey      = contextKey("deferChecks")
	sudoKey             = contextKey("sudo")
	userIDKey           = contextKey("userID")
)

// WithActiveCompany sets the company the request acts for.
func WithActiveCompany(ctx context.Context, companyID string) context.Context {
	return context.WithValue(ctx, activeCompanyKey, companyID)
}

// ActiveCompany returns the active company and whether one was set.
func ActiveCompany(ctx context.Context) (string, bool) {
	companyID, ok := ctx.Value(activeCompanyKey).(string)
	return companyID, ok && companyID != ""
}

// WithAllowedCompanies restricts visible records to the given companies.
// The active company is always allowed.
func WithAllowedCompanies(ctx context.Context, companyIDs []string) context.Context {
	allowed := make([]string, len(companyIDs))
	copy(allowed, companyIDs)
	return context.WithValue(ctx, allowedCompaniesKey, allowed)
}

// AllowedCompanies returns the visible companies, active company first.
func AllowedCompanies(ctx context.Context) []string {
	var out []string
	seen := make(map[string]bool)
	if active, ok := ActiveCompany(ctx); ok {
		out = append(out, active)
		seen[active] = true
	}
	allowed, _ := ctx.Value(allowedCompaniesKey).([]string)
	for _, id := range allowed {
		if !seen[id] {
			out = append(out, id)
			seen[id] = true
		}
	}
	return out
}

// WithDeferredChecks postpones account code and name checks to the caller.
func WithDeferredChecks(ctx context.Context) context.Context {
	return context.WithValue(ctx, deferChecksKey, true)
}

// ChecksDeferred reports whether uniqueness checks are postponed.
func ChecksDeferred(ctx context.Context) bool {
	deferred, _ := ctx.Value(deferChecksKey).(bool)
	return deferred
}

// WithSudo lifts the allowed-companies restriction for reads.
func WithSudo(ctx context.Context) context.Context {
	return context.WithValue(ctx, sudoKey, true)
}

// IsSudo reports whether reads ignore the allowed companies.
func IsSudo(ctx context.Context) bool {
	sudo, _ := ctx.Value(sudoKey).(bool)
	return sudo
}

// CanSee reports whether a record assigned to companyIDs is visible.
// Without any company environment everything is visible.
func CanSee(ctx context.Context, companyIDs []string) bool {
	if IsSudo(ctx) {
		return true
	}
	allowed := AllowedCompanies(ctx)
	if len(allowed) == 0 {
		return true
	}
	for _, id := range companyIDs {
		for _, a := range allowed {
			if id == a {
				return true
			}
		}
	}
	return false
}

// WithUserID records the acting user for audit fields.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the acting user or an empty string.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
