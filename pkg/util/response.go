package util

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       any              `json:"data,omitempty"`
	Errors     []FieldError     `json:"errors,omitempty"`
	Pagination *domain.PageInfo `json:"pagination,omitempty"`
}

// Success wraps data in a success envelope.
func Success(data any, message string) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Paginated wraps a page of rows with its metadata.
func Paginated[T any](page domain.PageResult[T]) Envelope {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	info := page.Info
	return Envelope{Success: true, Data: items, Pagination: &info}
}

// Failure renders a DomainError for the client. Internal causes are never included.
func Failure(err *DomainError) Envelope {
	return Envelope{Success: false, Message: err.Message, Errors: err.Errors}
}

// JSON writes a success envelope with the given status.
func JSON(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(Success(data, message))
}
