package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"renovation-crm/internal/logger"
	"renovation-crm/internal/postal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettlementLookup resolves a postal code to a settlement name.
type SettlementLookup interface {
	Settlement(ctx context.Context, code string) (string, error)
}

// LookupPostalCode is the public GET /api/postal-code/:code.
func LookupPostalCode(lookup SettlementLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.TrimSpace(c.Param("code"))
		if !postal.ValidCode(code) {
			badRequest(c, "postal code must be 4 digits")
			return
		}

		settlement, err := lookup.Settlement(c.Request.Context(), code)
		if err != nil {
			if errors.Is(err, postal.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "postal code not found"})
				return
			}
			logger.WithContext(c.Request.Context()).Warn("postal lookup failed", zap.String("code", code), zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "postal code lookup failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"postalCode": code, "settlement": settlement})
	}
}
