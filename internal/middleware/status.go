package middleware

import (
	"net/http"

	"github.com/deppfellow/product-catalog/internal/errs"
	"github.com/deppfellow/product-catalog/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// classifyError converts err into the error the client will be shown:
// an *errs.HTTPError or an *echo.HTTPError. Unknown route errors become a
// "Route not found" HTTPError; database and unknown errors go through sqlerr.
func classifyError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}
		return echoErr
	}

	return sqlerr.HandleError(err)
}

// responseStatus returns the status the client will receive.
//
// When a handler returns an error the response is not written yet; the
// global error handler writes it later. The status is then derived from the
// error so logs and metrics never report 200 for a failed request.
// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch classified := classifyError(err); {
	case errors.As(classified, &httpErr):
		return httpErr.Status
	case errors.As(classified, &echoErr):
		return echoErr.Code
	}

	return http.StatusInternalServerError
}
