package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetMonthlyVolumes(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	monthly, err := c.service.MonthlyVolumes(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, monthly)
}

func (c *Controller) GetWeeklyVolumes(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	weekly, err := c.service.WeeklyVolumes(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, weekly)
}

func (c *Controller) GetMonthlyVariations(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	variations, err := c.service.MonthlyVariations(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, variations)
}
