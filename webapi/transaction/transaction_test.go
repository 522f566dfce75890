package transaction_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/amirasaad/amanah/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	testutils.E2ETestSuite
	token  string
	cash   string
	bank   string
	food   string
	salary string
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	_, s.token = s.RegisterAndLogin()
	s.cash = s.CreateAccount(s.token, "Wallet", "cash", "500")
	s.bank = s.CreateAccount(s.token, "Checking", "bank", "1000")
	s.food = s.CategoryID(s.token, "Food")
	s.salary = s.CategoryID(s.token, "Salary")
}

type txBody struct {
	ID                   string  `json:"id"`
	Kind                 string  `json:"kind"`
	SourceAccountID      *string `json:"source_account_id"`
	DestinationAccountID *string `json:"destination_account_id"`
	CategoryName         string  `json:"category_name"`
	Amount               string  `json:"amount"`
	Date                 string  `json:"date"`
}

func (s *TransactionTestSuite) create(body string) txBody {
	resp := s.MakeRequest(http.MethodPost, "/transactions", body, s.token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var tx txBody
	s.Decode(resp, &tx)
	return tx
}

func (s *TransactionTestSuite) TestCreateAppliesEffects() {
	tx := s.create(fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"120.25","date":"2024-03-01"}`, s.cash, s.food))
	s.Equal("expense", tx.Kind)
	s.Equal("Food", tx.CategoryName)
	s.Equal("120.25", tx.Amount)
	s.Equal("2024-03-01", tx.Date)
	s.Equal("379.75", s.Balance(s.token, s.cash))

	s.create(fmt.Sprintf(`{"kind":"income","destination_account_id":%q,"category_id":%q,"amount":3000}`, s.bank, s.salary))
	s.Equal("4000.00", s.Balance(s.token, s.bank))

	s.create(fmt.Sprintf(`{"kind":"transfer","source_account_id":%q,"destination_account_id":%q,"amount":"400"}`, s.bank, s.cash))
	s.Equal("3600.00", s.Balance(s.token, s.bank))
	s.Equal("779.75", s.Balance(s.token, s.cash))
}

func (s *TransactionTestSuite) TestCreateRejects() {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"zero amount", fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"0"}`, s.cash, s.food), fiber.StatusBadRequest},
		{"negative amount", fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"-5"}`, s.cash, s.food), fiber.StatusBadRequest},
		{"oversized amount", fmt.Sprintf(`{"kind":"income","destination_account_id":%q,"category_id":%q,"amount":"100000000000000000"}`, s.bank, s.salary), fiber.StatusBadRequest},
		{"self transfer", fmt.Sprintf(`{"kind":"transfer","source_account_id":%q,"destination_account_id":%q,"amount":"1"}`, s.cash, s.cash), fiber.StatusBadRequest},
		{"unknown kind", `{"kind":"refund","amount":"1"}`, fiber.StatusBadRequest},
		{"bad date", fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"1","date":"01/03/2024"}`, s.cash, s.food), fiber.StatusBadRequest},
		{"unknown account", fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"1"}`, uuid.NewString(), s.food), fiber.StatusNotFound},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			resp := s.MakeRequest(http.MethodPost, "/transactions", tc.body, s.token)
			s.Equal(tc.want, resp.StatusCode)
		})
	}
	s.Equal("500.00", s.Balance(s.token, s.cash))
	s.Equal("1000.00", s.Balance(s.token, s.bank))
}

func (s *TransactionTestSuite) TestUpdateMovesEffects() {
	tx := s.create(fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"100"}`, s.cash, s.food))
	s.Equal("400.00", s.Balance(s.token, s.cash))

	body := fmt.Sprintf(`{"kind":"income","destination_account_id":%q,"category_id":%q,"amount":"150"}`, s.bank, s.salary)
	resp := s.MakeRequest(http.MethodPut, "/transactions/"+tx.ID, body, s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var updated txBody
	s.Decode(resp, &updated)
	s.Equal("income", updated.Kind)
	s.Nil(updated.SourceAccountID)
	s.Require().NotNil(updated.DestinationAccountID)
	s.Equal(s.bank, *updated.DestinationAccountID)

	s.Equal("500.00", s.Balance(s.token, s.cash))
	s.Equal("1150.00", s.Balance(s.token, s.bank))
}

func (s *TransactionTestSuite) TestUpdateFailureLeavesBalances() {
	tx := s.create(fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"100"}`, s.cash, s.food))

	resp := s.MakeRequest(http.MethodPut, "/transactions/"+tx.ID, `{"amount":"-1"}`, s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	s.Equal("400.00", s.Balance(s.token, s.cash))

	resp = s.MakeRequest(http.MethodPut, "/transactions/"+uuid.NewString(), `{"amount":"1"}`, s.token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TransactionTestSuite) TestDeleteRestoresBalance() {
	tx := s.create(fmt.Sprintf(`{"kind":"transfer","source_account_id":%q,"destination_account_id":%q,"amount":"250"}`, s.bank, s.cash))
	resp := s.MakeRequest(http.MethodDelete, "/transactions/"+tx.ID, "", s.token)
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Equal("500.00", s.Balance(s.token, s.cash))
	s.Equal("1000.00", s.Balance(s.token, s.bank))

	resp = s.MakeRequest(http.MethodGet, "/transactions/"+tx.ID, "", s.token)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *TransactionTestSuite) TestListFilters() {
	s.create(fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"10","date":"2024-01-10"}`, s.cash, s.food))
	s.create(fmt.Sprintf(`{"kind":"expense","source_account_id":%q,"category_id":%q,"amount":"20","date":"2024-02-10"}`, s.cash, s.food))
	s.create(fmt.Sprintf(`{"kind":"income","destination_account_id":%q,"category_id":%q,"amount":"30","date":"2024-02-20"}`, s.bank, s.salary))

	list := func(query string) []txBody {
		resp := s.MakeRequest(http.MethodGet, "/transactions"+query, "", s.token)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		var txs []txBody
		s.Decode(resp, &txs)
		return txs
	}

	all := list("")
	s.Require().Len(all, 3)
	s.Equal("2024-02-20", all[0].Date)

	s.Len(list("?startDate=2024-02-01&endDate=2024-02-10"), 1)
	s.Len(list("?categoryId="+s.food), 2)
	s.Len(list("?accountId="+s.bank), 1)

	resp := s.MakeRequest(http.MethodGet, "/transactions?startDate=yesterday", "", s.token)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}
