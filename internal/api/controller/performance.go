package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetRepresentativeMetrics(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	metrics, err := c.service.RepresentativeMetrics(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, metrics)
}

func (c *Controller) GetCategorySummary(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	summary, err := c.service.CategorySummary(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}

func (c *Controller) GetStateMetrics(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	metrics, err := c.service.StateMetrics(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, metrics)
}

func (c *Controller) GetCityMetrics(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	metrics, err := c.service.CityMetrics(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, metrics)
}
