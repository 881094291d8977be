package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetSummary(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	summary, err := c.service.Summary(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}

func (c *Controller) GetYears(ctx echo.Context) error {
	years, err := c.service.Years(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, years)
}
