package api

import (
	"github.com/labstack/echo/v4"

	"github.com/caeptox/labops/internal/pkg/constants"
)

type Binder struct {
	base echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	if err := b.base.Bind(i, c); err != nil {
		return constants.ErrInvalidParams
	}
	return nil
}
