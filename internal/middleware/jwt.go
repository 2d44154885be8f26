package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/eventflow-booking/internal/model"
    "github.com/iliyamo/eventflow-booking/internal/utils"
)

// Identify returns an Echo middleware that resolves the caller's identity
// once per request and stores it in the context.  A request without an
// Authorization header is anonymous.  A header that is present but not a
// valid Bearer token is rejected with 401 so that a broken client never
// silently degrades to anonymous access.
func Identify(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get(echo.HeaderAuthorization)
            if auth == "" {
                c.Set(identityKey, model.Anonymous)
                return next(c)
            }
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
            id, err := utils.ParseAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(identityKey, id)
            return next(c)
        }
    }
}
