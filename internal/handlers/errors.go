package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

const genericErrorMessage = "An unexpected error occurred"

// errorStatus maps a service error onto an HTTP status code.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the text shown to the client for err. Expected failures and
// conversion errors are echoed verbatim; anything else is hidden in production.
func errorMessage(err error, isProduction bool) string {
	if errorStatus(err) != http.StatusInternalServerError || errors.Is(err, apperrors.ErrConversion) {
		return err.Error()
	}
	if isProduction {
		return genericErrorMessage
	}
	return err.Error()
}

// logServiceError logs err at a level matching its status: expected client errors are
// warnings, the rest are errors.
func logServiceError(logger *slog.Logger, msg string, err error) {
	if errorStatus(err) == http.StatusInternalServerError {
		logger.Error(msg, slog.String("error", err.Error()))
		return
	}
	logger.Warn(msg, slog.String("error", err.Error()))
}

// useWireFieldNames makes validation errors name fields the way clients send them
// (json or form tag) instead of by Go field name.
func useWireFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
}

// bindingErrorMessage turns a binding failure into a client-facing message.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request format: " + err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "datetime":
			msgs = append(msgs, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
