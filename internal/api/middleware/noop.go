package middleware

import "github.com/labstack/echo/v4"

// Noop returns a middleware that does nothing, used in place of disabled middlewares.
func Noop() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return next
	}
}
