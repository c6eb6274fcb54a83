package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

func TestToDomainError(t *testing.T) {
	t.Run("Should pass domain errors through when wrapped", func(t *testing.T) {
		original := NewForbidden("Insufficient permissions")
		got := ToDomainError(fmt.Errorf("route: %w", original))
		assert.Same(t, original, error(got))
	})
	t.Run("Should map storage failures to client errors", func(t *testing.T) {
		cases := []struct {
			name    string
			err     error
			status  int
			message string
		}{
			{"missing row", pgx.ErrNoRows, http.StatusNotFound, "Resource not found"},
			{"unique", &pgconn.PgError{Code: "23505"}, http.StatusBadRequest, "Resource already exists"},
			{"foreign key", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest, "Referenced resource does not exist"},
			{"check", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest, "Invalid field value"},
		}
		for _, tc := range cases {
			got := ToDomainError(fmt.Errorf("insert: %w", tc.err))
			assert.Equal(t, tc.status, got.HTTPStatus, tc.name)
			assert.Equal(t, tc.message, got.Message, tc.name)
		}
	})
	t.Run("Should keep fiber statuses", func(t *testing.T) {
		got := ToDomainError(fiber.ErrRequestEntityTooLarge)
		assert.Equal(t, http.StatusRequestEntityTooLarge, got.HTTPStatus)
		assert.Equal(t, CodeBadRequest, got.Code)
	})
	t.Run("Should hide unexpected causes behind a generic message", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		got := ToDomainError(cause)
		assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
		assert.Equal(t, "Internal server error", got.Message)
		assert.ErrorIs(t, got, cause)

		envelope := Failure(got)
		assert.False(t, envelope.Success)
		assert.NotContains(t, envelope.Message, "connection refused")
	})
	t.Run("Should return nil for nil", func(t *testing.T) {
		assert.Nil(t, ToDomainError(nil))
		assert.NoError(t, MapError(nil))
	})
}

func TestPaginated(t *testing.T) {
	t.Run("Should render an empty page as an empty list", func(t *testing.T) {
		page := domain.PageResult[domain.Company]{Info: domain.NewPageInfo(domain.Page{Page: 1, Limit: 20}, 0)}
		envelope := Paginated(page)
		require.NotNil(t, envelope.Pagination)
		assert.True(t, envelope.Success)
		assert.Equal(t, []domain.Company{}, envelope.Data)
		assert.Equal(t, int64(0), envelope.Pagination.TotalPages)
	})
}
