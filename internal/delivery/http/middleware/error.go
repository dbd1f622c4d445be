package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
)

// AppError is the error handlers return. Data, when set, becomes the response
// body as-is (validation maps, field-keyed not-found messages); otherwise the
// body is {"error": Message}.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

type ErrorMiddleware struct{}

func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, body := normalizeError(err)
		return c.Status(status).JSON(body)
	}
}

func normalizeError(err error) (int, interface{}) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}
		if status >= 500 {
			return status, fiber.Map{"error": "internal server error"}
		}
		if appErr.Data != nil {
			return status, appErr.Data
		}
		msg := appErr.Message
		if msg == "" {
			msg = "error"
		}
		return status, fiber.Map{"error": msg}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, fiber.Map{"error": "internal server error"}
		}
		msg := fiberErr.Message
		if msg == "" {
			msg = "error"
		}
		return status, fiber.Map{"error": msg}
	}

	return fiber.StatusInternalServerError, fiber.Map{"error": "internal server error"}
}
