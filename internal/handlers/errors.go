package handlers

import (
	"log/slog"

	"github.com/SscSPs/wallet_fx_engine/internal/apperrors"
	"github.com/SscSPs/wallet_fx_engine/internal/dto"
	"github.com/SscSPs/wallet_fx_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// writeError renders err as {"error": {"kind", "message"}} with the status of its kind.
// Errors without a kind are logged and reported as Internal with a generic message.
func writeError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)

	message := apperrors.MessageOf(err)
	if status >= 500 {
		logger.Error(msg, slog.String("kind", string(kind)), slog.String("error", err.Error()))
		if kind == apperrors.KindInternal {
			message = "internal server error"
		}
	} else {
		logger.Warn(msg, slog.String("kind", string(kind)), slog.String("error", err.Error()))
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: dto.ErrorBody{Kind: kind, Message: message}})
}

// writeBindError reports a malformed request body or query.
func writeBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.AbortWithStatusJSON(apperrors.HTTPStatus(apperrors.KindValidation), dto.ErrorResponse{
		Error: dto.ErrorBody{Kind: apperrors.KindValidation, Message: "Invalid request format: " + err.Error()},
	})
}

// callerID returns the authenticated user or renders AuthenticationRequired.
func callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		writeError(c, apperrors.ErrAuthenticationRequired, "Caller identity missing")
		return "", false
	}
	return userID, true
}
