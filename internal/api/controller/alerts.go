package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	defaultInactivityThresholdDays = 30
	defaultAccreditationMonthsBack = 3
)

type inactivityQuery struct {
	dashboardQuery
	ThresholdDays int `query:"threshold_days" validate:"omitempty,gte=1,lte=3650"`
}

func (c *Controller) GetInactivityAlert(ctx echo.Context) error {
	var q inactivityQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	if err := ctx.Validate(&q); err != nil {
		return err
	}
	if q.ThresholdDays == 0 {
		q.ThresholdDays = defaultInactivityThresholdDays
	}

	rows, err := c.service.InactivityAlert(ctx.Request().Context(), q.params(), q.ThresholdDays)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rows)
}

type accreditationQuery struct {
	dashboardQuery
	MonthsBack int `query:"months_back" validate:"omitempty,gte=1,lte=120"`
}

func (c *Controller) GetNewAccreditations(ctx echo.Context) error {
	var q accreditationQuery
	if err := ctx.Bind(&q); err != nil {
		return err
	}
	if err := ctx.Validate(&q); err != nil {
		return err
	}
	if q.MonthsBack == 0 {
		q.MonthsBack = defaultAccreditationMonthsBack
	}

	rows, err := c.service.NewAccreditations(ctx.Request().Context(), q.params(), q.MonthsBack)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, rows)
}
