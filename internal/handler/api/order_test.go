//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"metromobiles/internal/domain/cart"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/handler/api"
	resdto "metromobiles/internal/handler/dto/response"
	"metromobiles/internal/usecase/commands"
	"metromobiles/internal/usecase/queries"
	"metromobiles/tests/common/httptest"
	commandsmock "metromobiles/tests/mock/commands"
	queriesmock "metromobiles/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	userID       uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	handler := api.NewOrderHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// 認証ミドルウェアの代わり
	authed := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
	}
	s.router.POST("/orders", authed, handler.Place)
	s.router.GET("/orders", authed, handler.List)
	s.router.GET("/orders/:id", authed, handler.Get)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func placeOrderBody() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"id": "p1", "quantity": 2},
		},
		"delivery_tier": "express",
		"address": map[string]any{
			"name":   "Asha",
			"street": "1 Main St",
			"city":   "Pune",
		},
	}
}

func (s *OrderHandlerTestSuite) orderView() *queries.OrderView {
	return &queries.OrderView{
		ID:     uuid.New(),
		UserID: s.userID,
		Items: cart.Lines{
			{ProductID: "p1", Name: "Phone A", Brand: "Acme", PriceCents: 10000, Quantity: 2, MaxStock: 5},
		},
		DeliveryTier:  "express",
		SubtotalCents: 20000,
		TaxCents:      2000,
		DeliveryCents: 2500,
		TotalCents:    24500,
		Address:       order.Address{Name: "Asha", Street: "1 Main St", City: "Pune"},
		Status:        "pending",
		CreatedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *OrderHandlerTestSuite) TestPlace() {
	url := "/orders"

	s.Run("success: returns 201 with server-side totals", func() {
		expected := commands.PlaceOrderInput{
			Items:        []commands.OrderItemInput{{ProductID: "p1", Quantity: 2}},
			DeliveryTier: "express",
			Address:      order.Address{Name: "Asha", Street: "1 Main St", City: "Pune"},
		}
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, expected).
			Return(s.orderView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeOrderBody(), "token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(int64(24500), response.TotalCents)
		s.Equal("express", response.DeliveryTier)
	})

	s.Run("error: 401 without auth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeOrderBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 for empty items", func() {
		body := placeOrderBody()
		body["items"] = []map[string]any{}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 for insufficient stock", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrInsufficientStock).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeOrderBody(), "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Insufficient stock")
	})

	s.Run("error: 400 when the product is gone", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrProductNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, placeOrderBody(), "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Product no longer available")
	})
}

func (s *OrderHandlerTestSuite) TestList() {
	url := "/orders"

	s.Run("success: returns the user's orders", func() {
		s.mockQueries.EXPECT().ListUserOrders(gomock.Any(), s.userID).
			Return([]queries.OrderView{*s.orderView()}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response []resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal("pending", response[0].Status)
	})

	s.Run("success: empty list stays a JSON array", func() {
		s.mockQueries.EXPECT().ListUserOrders(gomock.Any(), s.userID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 401 without auth", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *OrderHandlerTestSuite) TestGet() {
	view := s.orderView()

	s.Run("success: returns the order", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), s.userID, view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+view.ID.String(), nil, "token")

		var response resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: 404 for someone else's order", func() {
		s.mockQueries.EXPECT().GetOrder(gomock.Any(), s.userID, view.ID).
			Return(nil, queries.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+view.ID.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}
