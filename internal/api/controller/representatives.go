package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/caeptox/labops/internal/pkg/constants"
)

type overviewQuery struct {
	dashboardQuery
	Month string `query:"month" validate:"omitempty,len=7"`
}

func (c *Controller) GetRepresentativeOverview(ctx echo.Context) error {
	repName := ctx.Param("name")
	if repName == "" {
		return constants.ErrInvalidParams
	}

	var q overviewQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	if err := ctx.Validate(&q); err != nil {
		return err
	}

	overview, err := c.service.RepresentativeOverview(ctx.Request().Context(), q.params(), repName, q.Month)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, overview)
}
