package user_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/amanah/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	testutils.E2ETestSuite
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

type profileBody struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	DefaultCurrency string `json:"default_currency"`
}

func (s *UserTestSuite) TestGetAndUpdateProfile() {
	userID, token := s.RegisterAndLogin()

	resp := s.MakeRequest(http.MethodGet, "/profile", "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var profile profileBody
	s.Decode(resp, &profile)
	s.Equal(userID.String(), profile.ID)
	s.NotEmpty(profile.Username)
	s.Len(profile.DefaultCurrency, 3)

	resp = s.MakeRequest(http.MethodPut, "/profile", `{"name":"Layla","default_currency":"eur"}`, token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated profileBody
	s.Decode(resp, &updated)
	s.Equal("Layla", updated.Name)
	s.Equal("EUR", updated.DefaultCurrency)
	s.Equal(profile.Username, updated.Username)
}

func (s *UserTestSuite) TestUpdateProfileRejects() {
	_, token := s.RegisterAndLogin()

	for name, body := range map[string]string{
		"numeric currency": `{"default_currency":"123"}`,
		"long currency":    `{"default_currency":"EURO"}`,
		"malformed":        `{"name":`,
	} {
		s.Run(name, func() {
			resp := s.MakeRequest(http.MethodPut, "/profile", body, token)
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func (s *UserTestSuite) TestProfileRequiresToken() {
	resp := s.MakeRequest(http.MethodGet, "/profile", "", "")
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}
