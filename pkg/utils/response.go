package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "drilltrack/pkg/errors"
)

type HttpResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount *uint64     `json:"total_count,omitempty"`
}

// SuccessResponse writes the standard envelope. An optional trailing
// total count is included for paginated lists.
func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, totalCount ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(totalCount) > 0 {
		response.TotalCount = &totalCount[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse maps the error taxonomy onto HTTP codes and logs the
// internal cause. Every failure leaves through here; nothing is
// swallowed silently.
func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *apperrors.HttpError
	var transitionErr *apperrors.InvalidTransitionError
	var validationErr *apperrors.ValidationError
	var partialErr *apperrors.PartialWriteError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
		logger.Warn("request failed",
			zap.Int("code", code),
			zap.String("message", message),
			zap.Any("context", httpErr.Context),
			zap.Error(httpErr.Err),
		)
	case errors.As(err, &transitionErr):
		code = http.StatusConflict
		message = transitionErr.Error()
	case errors.Is(err, apperrors.ErrMissingReviewNotes):
		code = http.StatusUnprocessableEntity
		message = apperrors.ErrMissingReviewNotes.Error()
	case errors.As(err, &validationErr):
		code = http.StatusBadRequest
		message = validationErr.Message
	case errors.As(err, &fieldErrs):
		code = http.StatusBadRequest
		message = "validation failed: " + fieldErrs.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
		message = apperrors.ErrNotFound.Error()
	case errors.Is(err, apperrors.ErrBadRequest):
		code = http.StatusBadRequest
		message = apperrors.ErrBadRequest.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		code = http.StatusUnauthorized
		message = apperrors.ErrInvalidCredentials.Error()
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrForbidden):
		code = http.StatusForbidden
		message = apperrors.ErrForbidden.Error()
	case errors.As(err, &partialErr):
		code = http.StatusInternalServerError
		message = "write failed, no partial data was saved"
		logger.Error("partial multi-row write rolled back", zap.Error(err))
	default:
		logger.Error("unhandled error", zap.Error(err))
	}

	response := &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	}
	return ctx.JSON(code, response)
}
