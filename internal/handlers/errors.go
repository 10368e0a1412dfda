package handlers

import (
	"errors"
	"net/http"

	"renovation-crm/internal/database"
	"renovation-crm/internal/logger"
	"renovation-crm/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type validationDetails struct {
	Fields     []string              `json:"fields"`
	Violations validation.Violations `json:"violations"`
}

type errorCase struct {
	err     error
	status  int
	message string
}

var errorCases = []errorCase{
	{database.ErrNotFound, http.StatusNotFound, "not found"},
	{database.ErrEmailTaken, http.StatusBadRequest, "email already registered"},
	{database.ErrProcessClosed, http.StatusBadRequest, "process is already closed"},
	{database.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
}

// respondError maps err to a status code. Anything unrecognised is logged and
// answered with a generic 500.
func respondError(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   verr.Error(),
			Details: validationDetails{Fields: verr.Fields(), Violations: verr.Violations},
		})
		return
	}

	for _, ec := range errorCases {
		if errors.Is(err, ec.err) {
			c.JSON(ec.status, ErrorResponse{Error: ec.message})
			return
		}
	}

	_ = c.Error(err)
	logger.WithContext(c.Request.Context()).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// bindFailed answers a failed ShouldBind. Tag violations keep their field
// details; anything else is a malformed body.
func bindFailed(c *gin.Context, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		respondError(c, verr)
		return
	}
	badRequest(c, "invalid request body")
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}
