package handler

import (
    "errors"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/eventflow-booking/internal/apperror"
    "github.com/iliyamo/eventflow-booking/internal/logger"
)

// respondError writes err as {"error": message} with the status of its
// kind.  Internal causes are logged and never shown to the client.
func respondError(c echo.Context, log *zap.Logger, err error) error {
    kind := apperror.KindOf(err)
    msg := "internal server error"
    var ae *apperror.Error
    if errors.As(err, &ae) && kind != apperror.KindInternal {
        msg = ae.Message
    }
    if kind == apperror.KindInternal || kind == apperror.KindUpstream {
        log.Error("request failed",
            logger.RequestField(c.Request().Context()),
            zap.String("path", c.Path()),
            zap.String("kind", kind.String()),
            zap.Error(err),
        )
    }
    return c.JSON(kind.StatusCode(), echo.Map{"error": msg})
}
