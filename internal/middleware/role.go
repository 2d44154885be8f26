package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/iliyamo/eventflow-booking/internal/model"
)

// RequireCapability returns a middleware that admits only callers whose
// identity satisfies need.  It assumes Identify ran earlier in the chain.
// Anonymous callers get 401; authenticated callers with the wrong role get
// 403.
func RequireCapability(need model.Capability) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id := IdentityFrom(c)
            if id.IsAnonymous() {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            if !need.Allows(id) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
