package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/casaviva/casaviva-backend/internal/pkg/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	// RequiresReauth tells the client to re-prompt for the password and
	// retry, instead of surfacing a terminal error.
	RequiresReauth bool `json:"requires_reauth,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError maps an error onto the JSON envelope. Errors without an
// attached kind are treated as internal and keep their details off the wire.
func RespondError(c *gin.Context, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{Message: "internal error", Code: "INTERNAL"},
		})
		return
	}
	c.JSON(kind.Status, ErrorEnvelope{
		Error: APIError{
			Message:        err.Error(),
			Code:           kind.Code,
			RequiresReauth: kind.RequiresReauth,
		},
	})
}

func RespondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope{
		Error: APIError{Message: message, Code: "BAD_REQUEST"},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
