// Package testutils runs the full HTTP stack against a private in-memory
// database for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/amirasaad/amanah/infra"
	infracache "github.com/amirasaad/amanah/infra/cache"
	infraeventbus "github.com/amirasaad/amanah/infra/eventbus"
	"github.com/amirasaad/amanah/pkg/app"
	"github.com/amirasaad/amanah/pkg/config"
	pkgtestutils "github.com/amirasaad/amanah/pkg/testutils"
	"github.com/amirasaad/amanah/webapi"
	"github.com/amirasaad/amanah/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite serves the real routes over a fresh database per test.
type E2ETestSuite struct {
	suite.Suite
	App      *app.App
	FiberApp *fiber.App
	Bus      *infraeventbus.MemoryEventBus
	Cfg      *config.App
}

// TestConfig is the configuration the suite builds the app with.
func TestConfig() *config.App {
	return &config.App{
		Env:  "test",
		Auth: &config.Auth{Jwt: &config.Jwt{Secret: "e2e-secret", Expiry: time.Hour}},
		Zakat: &config.Zakat{
			GoldPricePerGram:   decimal.NewFromInt(5000),
			SilverPricePerGram: decimal.NewFromInt(80),
			NisabBasis:         "gold",
		},
		Ledger: &config.Ledger{DefaultCurrency: "INR"},
	}
}

// SetupTest builds a new app over an empty database.
func (s *E2ETestSuite) SetupTest() {
	db := pkgtestutils.NewTestDB(s.T())
	logger := pkgtestutils.NewTestLogger()
	s.Bus = infraeventbus.NewWithMemory(logger)
	if s.Cfg == nil {
		s.Cfg = TestConfig()
	}
	s.App = app.New(&app.Deps{
		Uow:             infra.NewUoW(db),
		EventBus:        s.Bus,
		MetalPriceCache: infracache.NewMemoryCache(),
		Logger:          logger,
	}, s.Cfg)
	s.FiberApp = webapi.SetupApp(s.App)
	log.SetOutput(io.Discard)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.FiberApp.Test(req, int((10 * time.Second).Milliseconds()))
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and decodes its data into out.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) common.Response {
	defer resp.Body.Close() //nolint: errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &envelope), string(raw))
	if out != nil && len(envelope.Data) > 0 {
		s.Require().NoError(json.Unmarshal(envelope.Data, out))
	}
	return envelope.Response
}

// Problem reads a problem details response.
func (s *E2ETestSuite) Problem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint: errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// RegisterAndLogin creates a user with a random username through the API
// and returns its id and a bearer token.
func (s *E2ETestSuite) RegisterAndLogin() (uuid.UUID, string) {
	username := "user_" + uuid.NewString()[:8]
	body := fmt.Sprintf(`{"username":%q,"password":"password123"}`, username)

	resp := s.MakeRequest(http.MethodPost, "/auth/register", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	s.Decode(resp, &created)
	userID, err := uuid.Parse(created.ID)
	s.Require().NoError(err)

	resp = s.MakeRequest(http.MethodPost, "/auth/login", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var login struct {
		Token string `json:"token"`
	}
	s.Decode(resp, &login)
	s.Require().NotEmpty(login.Token)
	return userID, login.Token
}

// CreateAccount opens an account through the API and returns its id.
func (s *E2ETestSuite) CreateAccount(token, name, kind, initial string) string {
	body := fmt.Sprintf(`{"name":%q,"kind":%q,"initial_balance":%q}`, name, kind, initial)
	resp := s.MakeRequest(http.MethodPost, "/accounts", body, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var out struct {
		ID string `json:"id"`
	}
	s.Decode(resp, &out)
	return out.ID
}

// CategoryID returns the id of the user's category with the given name.
func (s *E2ETestSuite) CategoryID(token, name string) string {
	resp := s.MakeRequest(http.MethodGet, "/categories", "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var categories []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	s.Decode(resp, &categories)
	for _, c := range categories {
		if c.Name == name {
			return c.ID
		}
	}
	s.FailNow("category not found", name)
	return ""
}

// Balance returns an account's current balance as reported by the API.
func (s *E2ETestSuite) Balance(token, accountID string) string {
	resp := s.MakeRequest(http.MethodGet, "/accounts/"+accountID, "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var out struct {
		CurrentBalance string `json:"current_balance"`
	}
	s.Decode(resp, &out)
	return out.CurrentBalance
}
