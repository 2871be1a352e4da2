package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wareeth/internal/domain"
)

// Body is the standard API response envelope.
type Body struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Body{Success: true, Message: message, Data: data})
}

func created(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Body{Success: true, Message: message, Data: data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Message: message})
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Body{Success: false, Message: message})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Body{Success: false, Message: message})
}

func internal(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Body{Success: false, Message: message})
}

// writeError maps a use-case error to its HTTP status, keeping the
// machine-distinguishable message.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNoActiveSession),
		errors.Is(err, domain.ErrInvalidIndex),
		errors.Is(err, domain.ErrQuestionAnswered),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken):
		badRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		unauthorized(c, err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		notFound(c, err.Error())
	default:
		internal(c, err.Error())
	}
}
