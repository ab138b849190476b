package middleware

import (
	"context"

	"kubramarket/internal/common"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie the session token travels in.
const SessionCookieName = "kubra_session"

// SessionMiddleware resolves the session cookie into a merchant id and puts
// it on the request context. Requests without a live session get 401 with the
// standard error envelope.
func SessionMiddleware(authSvc services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return common.SendUnauthorizedError(c)
			}

			merchantID, sessionID, err := authSvc.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return common.SendError(c, err)
			}

			ctx := context.WithValue(c.Request().Context(), common.MerchantIDKey, merchantID)
			ctx = context.WithValue(ctx, common.SessionIDKey, sessionID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
