package common

import (
	"errors"
	"time"

	"github.com/amirasaad/amanah/pkg/middleware"
	authsvc "github.com/amirasaad/amanah/pkg/service/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DateLayout is the wire format of ledger dates.
const DateLayout = "2006-01-02"

// CurrentUserID resolves the user behind the verified token. When ok is
// false a problem response has been written and err is the write result.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (userID uuid.UUID, ok bool, err error) {
	token, isToken := c.Locals(middleware.UserContextKey).(*jwt.Token)
	if !isToken {
		return uuid.Nil, false, ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
	}
	userID, err = authSvc.GetCurrentUserId(token)
	if err != nil {
		log.Errorf("Failed to parse user ID from token: %v", err)
		return uuid.Nil, false, ProblemDetailsJSON(c, "Invalid user ID", err, fiber.StatusUnauthorized)
	}
	return userID, true, nil
}

// ParamID parses the :id route parameter.
func ParamID(c *fiber.Ctx, title string) (id uuid.UUID, ok bool, err error) {
	id, err = uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false, ProblemDetailsJSON(c, title, err, "ID must be a valid UUID", fiber.StatusBadRequest)
	}
	return id, true, nil
}

// ParseUUID parses an optional uuid field. Empty yields nil.
func ParseUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseDate parses an optional YYYY-MM-DD field as midnight UTC.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *s)
	if err != nil {
		return nil, errors.New("date must be formatted as YYYY-MM-DD")
	}
	return &t, nil
}

// FormatUUID renders an optional id, nil for none.
func FormatUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
