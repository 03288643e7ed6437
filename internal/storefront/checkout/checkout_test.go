//go:build unit

package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domcatalog "metromobiles/internal/domain/catalog"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/pkg/clock"
	"metromobiles/internal/pkg/errs"
	"metromobiles/internal/storefront/apiclient"
	"metromobiles/internal/storefront/cart"
	"metromobiles/internal/storefront/catalog"
	"metromobiles/internal/storefront/checkout"
	"metromobiles/internal/storefront/kv"
	"metromobiles/internal/storefront/session"

	"github.com/stretchr/testify/suite"
)

type stubBackend struct{}

func (stubBackend) Login(_ context.Context, email, _ string) (*session.Session, error) {
	return &session.Session{
		Identity: session.Identity{UserID: "u1", Name: "Asha", Email: email},
		Token:    "token-1",
	}, nil
}

func (stubBackend) Register(_ context.Context, _, _, _ string) (*session.Session, error) {
	return nil, errs.New("not used")
}

func (stubBackend) GoogleSignIn(_ context.Context, _ session.GoogleIdentity) (*session.Session, error) {
	return nil, errs.New("not used")
}

type orderCapture struct {
	req       apiclient.PlaceOrderRequest
	token     string
	status    int
	respBody  any
	requested bool
}

type CheckoutSuite struct {
	suite.Suite
	ctx      context.Context
	store    *kv.MemoryStore
	carts    *cart.Store
	hs       *session.Handshake
	clock    *clock.MockClock
	server   *httptest.Server
	capture  *orderCapture
	checkout *checkout.Checkout
	products []domcatalog.Product
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutSuite))
}

func (s *CheckoutSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = kv.NewMemoryStore()
	s.carts = cart.NewStore(s.store, nil)
	s.clock = clock.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s.hs = session.NewHandshake(stubBackend{}, s.store, s.clock, session.DefaultTTL, nil)

	s.products = []domcatalog.Product{
		{ID: "p1", Slug: "p1", Name: "Phone A", Brand: "Acme", PriceCents: 10000, Stock: 5},
		{ID: "p2", Slug: "p2", Name: "Phone B", Brand: "Acme", PriceCents: 5000, Stock: 5},
	}

	s.capture = &orderCapture{status: http.StatusCreated}
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(s.products)
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		s.capture.requested = true
		s.capture.token = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&s.capture.req)
		w.WriteHeader(s.capture.status)
		if s.capture.respBody != nil {
			_ = json.NewEncoder(w).Encode(s.capture.respBody)
		}
	})
	s.server = httptest.NewServer(mux)

	api := apiclient.New(s.server.URL)
	accessor := catalog.NewAccessor(api, s.store, nil)
	s.checkout = checkout.New(s.hs, s.carts, cart.NewReconciler(s.carts), accessor, api)
}

func (s *CheckoutSuite) TearDownTest() {
	s.server.Close()
}

func (s *CheckoutSuite) login() {
	_, err := s.hs.Login(s.ctx, "asha@example.com", "secret")
	s.Require().NoError(err)
}

func (s *CheckoutSuite) fill() {
	_, err := s.carts.AddOrIncrement(s.ctx, &s.products[0], 2)
	s.Require().NoError(err)
}

func (s *CheckoutSuite) TestSummary() {
	s.fill()

	summary, err := s.checkout.Summary(s.ctx)
	s.Require().NoError(err)
	s.Len(summary.Lines, 1)
	s.Equal(0, summary.Removed)
	s.Equal(int64(20000), summary.Totals.SubtotalCents)
	s.Equal(int64(2000), summary.Totals.TaxCents)
	s.Equal(int64(1000), summary.Totals.DeliveryCents)
}

func (s *CheckoutSuite) TestSummaryEmptyCartNoDelivery() {
	summary, err := s.checkout.Summary(s.ctx)
	s.Require().NoError(err)
	s.Empty(summary.Lines)
	s.Equal(int64(0), summary.Totals.DeliveryCents)
}

func (s *CheckoutSuite) TestSummaryReportsRemovedLines() {
	s.fill()
	_, err := s.carts.AddOrIncrement(s.ctx, &domcatalog.Product{
		ID: "ghost", Slug: "ghost", Name: "Gone", Brand: "Acme", PriceCents: 100, Stock: 1,
	}, 1)
	s.Require().NoError(err)

	summary, err := s.checkout.Summary(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, summary.Removed)
	s.Len(summary.Lines, 1)
}

func (s *CheckoutSuite) TestPlaceOrderRequiresSession() {
	s.fill()

	_, err := s.checkout.PlaceOrder(s.ctx, order.TierStandard, order.Address{})
	s.Require().ErrorIs(err, errs.ErrNotLoggedIn)
	s.False(s.capture.requested)

	// ログイン後にチェックアウトを再開できるようマーカーが残る
	s.True(s.hs.TakeCheckoutRedirect(s.ctx))

	// カートは無傷
	s.Len(s.carts.Load(s.ctx), 1)
}

func (s *CheckoutSuite) TestPlaceOrderEmptyCart() {
	s.login()

	_, err := s.checkout.PlaceOrder(s.ctx, order.TierStandard, order.Address{})
	s.Require().ErrorIs(err, errs.ErrEmptyCart)
	s.False(s.capture.requested)
}

func (s *CheckoutSuite) TestPlaceOrderSuccessClearsCart() {
	s.login()
	s.fill()
	s.capture.respBody = apiclient.OrderView{
		ID:            "o1",
		DeliveryTier:  "express",
		SubtotalCents: 20000,
		TaxCents:      2000,
		DeliveryCents: 2500,
		TotalCents:    24500,
		Status:        "pending",
	}

	view, err := s.checkout.PlaceOrder(s.ctx, order.TierExpress, order.Address{Name: "Asha", Street: "1 Main St", City: "Pune"})
	s.Require().NoError(err)
	s.Equal("o1", view.ID)
	s.Equal(int64(24500), view.TotalCents)

	s.Equal("Bearer token-1", s.capture.token)
	s.Equal("express", s.capture.req.DeliveryTier)
	s.Require().Len(s.capture.req.Items, 1)
	s.Equal(domcatalog.ID("p1"), s.capture.req.Items[0].ProductID)
	s.Equal(2, s.capture.req.Items[0].Quantity)

	s.Empty(s.carts.Load(s.ctx))
}

func (s *CheckoutSuite) TestPlaceOrderRejectionKeepsCart() {
	s.login()
	s.fill()
	s.capture.status = http.StatusConflict
	s.capture.respBody = map[string]any{"error": map[string]string{"message": "insufficient stock"}}

	_, err := s.checkout.PlaceOrder(s.ctx, order.TierStandard, order.Address{})
	s.Require().Error(err)

	var rejected *apiclient.RejectedError
	s.Require().ErrorAs(err, &rejected)
	s.Equal(http.StatusConflict, rejected.Status)
	s.Equal("insufficient stock", rejected.Message)

	// 失敗してもカートは消えない
	s.Len(s.carts.Load(s.ctx), 1)
}

func (s *CheckoutSuite) TestQuote() {
	s.fill()
	totals := s.checkout.Quote(s.carts.Load(s.ctx), order.TierOvernight)
	s.Equal(int64(4500), totals.DeliveryCents)
	s.Equal(int64(26500), totals.TotalCents)
}
