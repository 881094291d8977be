package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) ReloadDataset(ctx echo.Context) error {
	result, err := c.service.Reload(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, result)
}
