package stock_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/amanah/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type StockTestSuite struct {
	testutils.E2ETestSuite
}

func TestStockTestSuite(t *testing.T) {
	suite.Run(t, new(StockTestSuite))
}

type stockBody struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Notes string `json:"notes"`
}

func (s *StockTestSuite) TestCRUD() {
	_, token := s.RegisterAndLogin()

	resp := s.MakeRequest(http.MethodPost, "/stocks", `{"name":"Index fund","value":"1500.25","notes":"monthly"}`, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created stockBody
	s.Decode(resp, &created)
	s.Equal("Index fund", created.Name)
	s.Equal("1500.25", created.Value)
	s.Equal("monthly", created.Notes)

	resp = s.MakeRequest(http.MethodPut, "/stocks/"+created.ID, `{"value":"1800"}`, token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated stockBody
	s.Decode(resp, &updated)
	s.Equal("1800.00", updated.Value)
	s.Equal("Index fund", updated.Name)

	resp = s.MakeRequest(http.MethodGet, "/stocks", "", token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var list []stockBody
	s.Decode(resp, &list)
	s.Require().Len(list, 1)
	s.Equal(created.ID, list[0].ID)

	resp = s.MakeRequest(http.MethodDelete, "/stocks/"+created.ID, "", token)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(http.MethodGet, "/stocks/"+created.ID, "", token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *StockTestSuite) TestCreateRejects() {
	_, token := s.RegisterAndLogin()

	for name, body := range map[string]string{
		"missing name":   `{"value":"10"}`,
		"negative value": `{"name":"Gold ETF","value":"-5"}`,
		"oversized":      `{"name":"Gold ETF","value":"10000000000000"}`,
	} {
		s.Run(name, func() {
			resp := s.MakeRequest(http.MethodPost, "/stocks", body, token)
			s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func (s *StockTestSuite) TestOtherUsersHoldingIsNotFound() {
	_, owner := s.RegisterAndLogin()
	resp := s.MakeRequest(http.MethodPost, "/stocks", `{"name":"Sukuk","value":"200"}`, owner)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created stockBody
	s.Decode(resp, &created)

	_, intruder := s.RegisterAndLogin()
	resp = s.MakeRequest(http.MethodPut, "/stocks/"+created.ID, `{"name":"Mine"}`, intruder)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	resp = s.MakeRequest(http.MethodDelete, "/stocks/"+created.ID, "", intruder)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *StockTestSuite) TestHoldingsFeedZakatInvestments() {
	_, token := s.RegisterAndLogin()
	resp := s.MakeRequest(http.MethodPost, "/stocks", `{"name":"Index fund","value":"60000"}`, token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.MakeRequest(http.MethodPost, "/zakat/calculate", `{"nisab_basis":"silver","silver_price":"80"}`, token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var res struct {
		TotalAssets string `json:"total_assets"`
		IsDue       bool   `json:"is_due"`
		ZakatDue    string `json:"zakat_due"`
	}
	s.Decode(resp, &res)
	s.Equal("60000.00", res.TotalAssets)
	s.True(res.IsDue)
	s.Equal("1500.00", res.ZakatDue)
}
