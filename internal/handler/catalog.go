package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/eventflow-booking/internal/model"
    "github.com/iliyamo/eventflow-booking/internal/service"
)

// PackageInfo is one row of the public package catalog.
type PackageInfo struct {
    Name  model.PackageTier `json:"name"`
    Price int64             `json:"price"`
}

// Packages handles GET /packages and lists every tier with its INR price.
func Packages(c echo.Context) error {
    tiers := model.Tiers()
    out := make([]PackageInfo, 0, len(tiers))
    for _, t := range tiers {
        p, _ := t.Price()
        out = append(out, PackageInfo{Name: t, Price: p})
    }
    return c.JSON(http.StatusOK, echo.Map{"currency": model.CurrencyINR, "packages": out})
}

// Assist handles POST /ai/assist {"question": "..."}.  Unknown or empty
// questions get the default prompt back.
func Assist(c echo.Context) error {
    var body struct {
        Question string `json:"question"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reply": service.SuggestPackage(strings.TrimSpace(body.Question))})
}
