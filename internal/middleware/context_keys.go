package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// contextKey is the type for values stored in the request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userNameKey  = contextKey("userName")
	userOrgKey   = contextKey("userOrganizationID")
)

// GetLoggerFromCtx retrieves the request-scoped logger from a standard context.
// It returns the default logger when the logging middleware did not run, e.g. in tests.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetUserNameFromContext retrieves the display name carried by the token, if any.
func GetUserNameFromContext(c *gin.Context) string {
	name, _ := c.Request.Context().Value(userNameKey).(string)
	return name
}

// GetUserOrganizationFromContext retrieves the organization the token was issued for.
// It is empty when the token carries no org claim.
func GetUserOrganizationFromContext(c *gin.Context) string {
	orgID, _ := c.Request.Context().Value(userOrgKey).(string)
	return orgID
}

// MutationContextFromGin builds the actor information recorded with every change.
// OrganizationID is the caller's own organization from the token, not the :organizationID
// route parameter, which only scopes the resource being addressed.
func MutationContextFromGin(c *gin.Context) (domain.MutationContext, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.MutationContext{}, false
	}
	return domain.MutationContext{
		UserID:         userID,
		UserName:       GetUserNameFromContext(c),
		IPAddress:      c.ClientIP(),
		OrganizationID: GetUserOrganizationFromContext(c),
	}, true
}
