package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/vat-directory/internal/domain/access"
	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

// accessMiddleware requires a bearer token when the guard has a secret configured.
func accessMiddleware(svc access.Service) gin.HandlerFunc {
	if svc == nil || !svc.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}
		claims, err := svc.ValidateToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			status := http.StatusForbidden
			code := "invalid_token"
			if !apperrors.IsCode(err, "invalid_token") {
				status = http.StatusInternalServerError
				code = "access_failed"
			}
			abortWithError(c, NewHTTPError(status, code, apperrors.Message(err), err))
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}
