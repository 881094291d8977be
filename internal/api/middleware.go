package api

import (
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/caeptox/labops/internal/pkg/constants"
	"github.com/caeptox/labops/internal/pkg/utils"
)

// AdminMiddleware guards maintenance endpoints with the signed secret
// token; end-user authentication is out of scope.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrMissingAuthToken
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}
