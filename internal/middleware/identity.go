package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/eventflow-booking/internal/model"
)

const identityKey = "identity"

// IdentityFrom returns the identity stored by Identify, or the anonymous
// identity when none was resolved.
func IdentityFrom(c echo.Context) model.Identity {
    if id, ok := c.Get(identityKey).(model.Identity); ok {
        return id
    }
    return model.Anonymous
}

// userID is the rate-limit key component for the caller.
func userID(c echo.Context) string {
    if id := IdentityFrom(c); id.Subject != "" {
        return id.Subject
    }
    return "anon"
}
