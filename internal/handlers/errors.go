package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const msgInvalidPayload = "Invalid request payload"

// ErrorHandler is installed as echo's HTTPErrorHandler. Domain errors are
// written as {"message"} (plus "errors" for validation), echo errors keep
// their status, and anything else becomes an opaque 500.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("Request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to write error response")
	}
}

func errorResponse(err error) (int, echo.Map) {
	if e, ok := errs.As(err); ok {
		body := echo.Map{"message": e.Message}
		if len(e.Fields) > 0 {
			body["errors"] = e.Fields
		}
		return e.Status, body
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, echo.Map{"message": errs.Internal(nil).Message}
		}
		msg, ok := he.Message.(string)
		if !ok {
			msg = http.StatusText(he.Code)
		}
		return he.Code, echo.Map{"message": msg}
	}

	return http.StatusInternalServerError, echo.Map{"message": errs.Internal(nil).Message}
}

// bind decodes the request body, mapping decoder failures to 400.
func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return errs.BadRequest(msgInvalidPayload)
	}
	return nil
}
