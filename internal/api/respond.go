package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"honestspace/server/internal/apperrors"
)

var codeStatus = map[apperrors.Code]int{
	apperrors.CodeValidation:           http.StatusBadRequest,
	apperrors.CodeUniqueness:           http.StatusConflict,
	apperrors.CodeReferentialIntegrity: http.StatusConflict,
	apperrors.CodeAuthentication:       http.StatusUnauthorized,
	apperrors.CodeAuthorization:        http.StatusForbidden,
	apperrors.CodeNotFound:             http.StatusNotFound,
}

// respondError maps an application error onto its HTTP status and a stable
// JSON error shape. Unclassified errors become opaque 500s.
func (h *Handler) respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		status, ok := codeStatus[appErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		body := gin.H{"error": appErr.Message, "code": string(appErr.Code)}
		if appErr.Field != "" {
			body["field"] = appErr.Field
		}
		c.JSON(status, body)
		return
	}

	h.logger.WithError(err).WithField("path", c.FullPath()).Error("Unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
