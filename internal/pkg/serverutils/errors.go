package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is the request-scoped failure type. Every error in the API
// resolves to a response for the current request; nothing here is fatal.
type AppError struct {
	Code    int               `json:"-"`
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

const (
	KindUnauthenticated = "AUTHENTICATION_REQUIRED"
	KindForbidden       = "AUTHORIZATION_DENIED"
	KindValidation      = "VALIDATION_FAILED"
	KindNotFound        = "NOT_FOUND"
	KindProvider        = "EXTERNAL_PROVIDER_FAILURE"
)

// ErrUnauthenticated: no valid session. Distinct from ErrForbidden, which
// means the session is fine but the actor does not own the target.
func ErrUnauthenticated(message string) *AppError {
	return &AppError{Code: fiber.StatusUnauthorized, Kind: KindUnauthenticated, Message: message}
}

func ErrForbidden(message string) *AppError {
	return &AppError{Code: fiber.StatusForbidden, Kind: KindForbidden, Message: message}
}

func ErrNotFound(message string) *AppError {
	return &AppError{Code: fiber.StatusNotFound, Kind: KindNotFound, Message: message}
}

func ErrValidation(fields map[string]string) *AppError {
	return &AppError{
		Code:    fiber.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// ErrProvider wraps an OAuth provider failure. The message is what the end
// user sees; provider detail stays in the server log only.
func ErrProvider() *AppError {
	return &AppError{Code: fiber.StatusBadGateway, Kind: KindProvider, Message: "login with provider failed"}
}
