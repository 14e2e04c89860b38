package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/DjordjeVuckovic/news-ingest/internal/i18n"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func GlobalErrorHandler(msgs *i18n.Messages) echo.HTTPErrorHandler {
	if msgs == nil {
		msgs = i18n.For(i18n.DefaultLanguage)
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := Classify(err, msgs)
		if status >= http.StatusInternalServerError {
			slog.Error("Request failed", "path", c.Path(), "status", status, "error", err)
		}
		_ = c.JSON(status, resp)
	}
}

// Classify maps an error to an HTTP status and a localized body.
func Classify(err error, msgs *i18n.Messages) (int, ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ErrorResponse{Message: msgs.InvalidRequest, Error: ve.Error()}
	}

	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return http.StatusInternalServerError, ErrorResponse{Message: msgs.APIKeyNotFound, Error: ce.Error()}
	}

	var pe *PipelineError
	if errors.As(err, &pe) {
		var te *TransportError
		if errors.As(pe, &te) {
			return http.StatusBadGateway, ErrorResponse{Message: msgs.APIHitError, Error: pe.Error()}
		}
		var fe *FormatError
		if errors.As(pe, &fe) {
			return http.StatusBadGateway, ErrorResponse{Message: msgs.UnexpectedAPIDataFormat, Error: pe.Error()}
		}
		return http.StatusInternalServerError, ErrorResponse{Message: msgs.TransactionFailed, Error: pe.Error()}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, ErrorResponse{Message: http.StatusText(he.Code), Error: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, ErrorResponse{Message: msgs.InternalError, Error: "internal server error"}
}
