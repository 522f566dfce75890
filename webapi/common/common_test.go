package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amirasaad/amanah/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrInvalidAmount, fiber.StatusBadRequest},
		{domain.ErrInvalidKind, fiber.StatusBadRequest},
		{domain.ErrInvalidTransfer, fiber.StatusBadRequest},
		{domain.ErrInvalidZakatInput, fiber.StatusBadRequest},
		{fmt.Errorf("%w: name", domain.ErrInvalidInput), fiber.StatusBadRequest},
		{domain.ErrAccountNotFound, fiber.StatusNotFound},
		{domain.ErrCategoryNotFound, fiber.StatusNotFound},
		{domain.ErrTransactionNotFound, fiber.StatusNotFound},
		{domain.ErrStockNotFound, fiber.StatusNotFound},
		{domain.ErrAccountHasTransactions, fiber.StatusConflict},
		{domain.ErrCategoryHasTransactions, fiber.StatusConflict},
		{domain.ErrAlreadyExists, fiber.StatusConflict},
		{domain.ErrUserUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrStorageFailure, fiber.StatusInternalServerError},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorToStatusCode(tc.err))
		})
	}
}

func TestProblemDetailsJSON(t *testing.T) {
	app := fiber.New()
	app.Get("/mapped", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Failed", domain.ErrAccountHasTransactions)
	})
	app.Get("/override", func(c *fiber.Ctx) error {
		return ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/mapped", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.Header.Get(fiber.HeaderContentType))
	var pd ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "Failed", pd.Title)
	assert.Equal(t, domain.ErrAccountHasTransactions.Error(), pd.Detail)
	assert.Equal(t, "/mapped", pd.Instance)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/override", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	assert.Equal(t, "missing user context", pd.Detail)
}

type bindInput struct {
	Name string `json:"name" validate:"required,max=5"`
}

func TestBindAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		input, err := BindAndValidate[bindInput](c)
		if input == nil {
			return err
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", input)
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"name":"cash"}`, fiber.StatusOK},
		{"malformed", `{"name":`, fiber.StatusBadRequest},
		{"missing field", `{}`, fiber.StatusBadRequest},
		{"too long", `{"name":"groceries"}`, fiber.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
