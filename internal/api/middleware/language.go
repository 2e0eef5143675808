package middleware

import (
	"context"

	"github.com/JojoFlex1/done/internal/i18n"
	"github.com/JojoFlex1/done/internal/util"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// Language stores the best matching language of the Accept-Language header in the request context.
func Language(svc *i18n.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tag := svc.ParseAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			ctx := context.WithValue(c.Request().Context(), util.CTXKeyAcceptLanguage, tag)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// LanguageFromContext returns the request language set by Language, or und.
func LanguageFromContext(ctx context.Context) language.Tag {
	tag, ok := ctx.Value(util.CTXKeyAcceptLanguage).(language.Tag)
	if !ok {
		return language.Und
	}

	return tag
}
