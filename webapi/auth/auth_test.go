package auth_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/amanah/pkg/domain/events"
	"github.com/amirasaad/amanah/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	testutils.E2ETestSuite
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}

func (s *AuthTestSuite) TestRegisterSeedsCategoriesAndLogsIn() {
	userID, token := s.RegisterAndLogin()
	s.NotEmpty(token)

	var registered bool
	for _, e := range s.Bus.Published() {
		if ur, ok := e.(*events.UserRegistered); ok && ur.UserID == userID {
			registered = true
		}
	}
	s.True(registered)

	resp := s.MakeRequest(http.MethodGet, "/categories?type=income", "", token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var categories []map[string]any
	s.Decode(resp, &categories)
	s.Len(categories, 4)
}

func (s *AuthTestSuite) TestRegisterConflictsOnDuplicateUsername() {
	body := `{"username":"alice","password":"password123"}`
	resp := s.MakeRequest(http.MethodPost, "/auth/register", body, "")
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, "/auth/register", `{"username":"ALICE","password":"password123"}`, "")
	s.Equal(fiber.StatusConflict, resp.StatusCode)
}

func (s *AuthTestSuite) TestRegisterValidation() {
	for name, body := range map[string]string{
		"missing password": `{"username":"bob"}`,
		"short password":   `{"username":"bob","password":"123"}`,
		"short username":   `{"username":"b","password":"password123"}`,
		"malformed":        `{"username":`,
	} {
		s.Run(name, func() {
			resp := s.MakeRequest(http.MethodPost, "/auth/register", body, "")
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func (s *AuthTestSuite) TestLoginRejectsBadCredentials() {
	s.RegisterAndLogin()

	resp := s.MakeRequest(http.MethodPost, "/auth/login", `{"username":"nobody","password":"password123"}`, "")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
	pd := s.Problem(resp)
	s.Equal("Invalid username or password", pd.Title)
}

func (s *AuthTestSuite) TestProtectedRoutesNeedToken() {
	resp := s.MakeRequest(http.MethodGet, "/accounts", "", "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/accounts", "", "not-a-jwt")
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}
