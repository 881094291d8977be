package controller

import (
	"github.com/labstack/echo/v4"

	"github.com/caeptox/labops/internal/service/dashboard"
)

type Controller struct {
	service *dashboard.Service
}

func NewController(service *dashboard.Service) *Controller {
	return &Controller{service: service}
}

// dashboardQuery carries the scalar parameters shared by every analytics
// endpoint. Unset values fall back to the configured defaults downstream;
// exclude_disabled is a pointer so ?exclude_disabled=false is
// distinguishable from the parameter being absent.
type dashboardQuery struct {
	Year            int   `query:"year" validate:"omitempty,gte=2000,lte=2100"`
	WindowDays      int   `query:"window_days" validate:"omitempty,gte=1,lte=365"`
	ExcludeTest     bool  `query:"exclude_test"`
	ExcludeDisabled *bool `query:"exclude_disabled"`
}

func (q dashboardQuery) params() dashboard.Params {
	return dashboard.Params{
		Year:            q.Year,
		WindowDays:      q.WindowDays,
		ExcludeTest:     q.ExcludeTest,
		ExcludeDisabled: q.ExcludeDisabled,
	}
}

func bindParams(ctx echo.Context) (dashboard.Params, error) {
	var q dashboardQuery
	if err := ctx.Bind(&q); err != nil {
		return dashboard.Params{}, err
	}
	if err := ctx.Validate(&q); err != nil {
		return dashboard.Params{}, err
	}
	return q.params(), nil
}
