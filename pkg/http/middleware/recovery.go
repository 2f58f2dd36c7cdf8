package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "AstroInsight/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a panic in a handler into a 500 response and logs the stack.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				perr, ok := r.(error)
				if !ok {
					perr = fmt.Errorf("%v", r)
				}
				l.WithContext(c.Request().Context()).Error("panic recovered",
					applogger.Error(perr),
					applogger.String("route", routeOf(c)),
					applogger.String("stack", string(debug.Stack())),
				)
				if c.Response().Committed {
					return
				}
				body := map[string]interface{}{
					"status":  http.StatusInternalServerError,
					"message": "internal error",
				}
				if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
					body["request_id"] = id
				}
				err = c.JSON(http.StatusInternalServerError, body)
			}()
			return next(c)
		}
	}
}
