package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a business failure. Each kind maps to exactly one
// HTTP status and response code, so no error is ever swallowed into a
// generic success response.
type ErrorKind string

const (
	KindNotFound             ErrorKind = "NOT_FOUND"
	KindConflict             ErrorKind = "CONFLICT"
	KindForbidden            ErrorKind = "FORBIDDEN"
	KindInvalidInput         ErrorKind = "INVALID_INPUT"
	KindInvalidConfiguration ErrorKind = "INVALID_CONFIGURATION"
	KindInvalidState         ErrorKind = "INVALID_STATE"
	KindDuplicateReview      ErrorKind = "DUPLICATE_REVIEW"
	KindPaymentGateway       ErrorKind = "PAYMENT_GATEWAY_ERROR"
	KindTransactionAborted   ErrorKind = "TRANSACTION_ABORTED"
	KindUnauthorized         ErrorKind = "UNAUTHORIZED"
	KindInternal             ErrorKind = "INTERNAL_ERROR"
)

type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match on kind: errors.Is(err, &AppError{Kind: KindNotFound}).
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func WrapAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: resource + " not found"}
}

func ConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func ForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

func InvalidInputError(message string) *AppError {
	return &AppError{Kind: KindInvalidInput, Message: message}
}

func InvalidConfigurationError(message string) *AppError {
	return &AppError{Kind: KindInvalidConfiguration, Message: message}
}

func InvalidStateError(message string) *AppError {
	return &AppError{Kind: KindInvalidState, Message: message}
}

func DuplicateReviewError(message string) *AppError {
	return &AppError{Kind: KindDuplicateReview, Message: message}
}

func PaymentGatewayError(message string, err error) *AppError {
	return &AppError{Kind: KindPaymentGateway, Message: message, Err: err}
}

func TransactionAbortedError(err error) *AppError {
	return &AppError{Kind: KindTransactionAborted, Message: "transaction aborted", Err: err}
}

// KindOf extracts the kind from any error in the chain, defaulting to internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to its fixed HTTP status.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindDuplicateReview:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindInvalidInput, KindInvalidConfiguration, KindInvalidState:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPaymentGateway:
		return http.StatusBadGateway
	case KindTransactionAborted:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
