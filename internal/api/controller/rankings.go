package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetRepresentativeRanking(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	ranking, err := c.service.RepresentativeRanking(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ranking)
}

func (c *Controller) GetLaboratoryRanking(ctx echo.Context) error {
	params, err := bindParams(ctx)
	if err != nil {
		return err
	}

	ranking, err := c.service.LaboratoryRanking(ctx.Request().Context(), params)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ranking)
}
