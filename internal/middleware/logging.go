package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogging logs one structured line per completed request with
// method, path, status and duration.  Auth failures show up here with
// their status; nothing about credentials is ever logged.
func RequestLogging(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.Info().
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Str("remote_addr", c.RealIP()).
				Int("status", c.Response().Status).
				Dur("duration", time.Since(start)).
				Msg("request completed")
			return nil
		}
	}
}
