//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"metromobiles/internal/domain/catalog"
	"metromobiles/internal/domain/order"
	"metromobiles/internal/infra"
	"metromobiles/internal/pkg/clock"
	"metromobiles/internal/usecase/commands"
	"metromobiles/internal/usecase/shared"
	repositorymock "metromobiles/tests/mock/repository"
	sharedmock "metromobiles/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderCommandsTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockCtrl     *gomock.Controller
	mockUow      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockProducts *repositorymock.MockProductRepository
	mockOrders   *repositorymock.MockOrderRepository
	clock        *clock.MockClock
	cmds         commands.OrderCommands
	userID       uuid.UUID
}

func (s *OrderCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockProducts = repositorymock.NewMockProductRepository(s.mockCtrl)
	s.mockOrders = repositorymock.NewMockOrderRepository(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewOrderCommands(s.mockUow, s.clock)
	s.userID = uuid.New()

	s.mockTx.EXPECT().Products().Return(s.mockProducts).AnyTimes()
	s.mockTx.EXPECT().Orders().Return(s.mockOrders).AnyTimes()
}

func (s *OrderCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsTestSuite))
}

// expectWithin drives the transaction callback with the mocked Tx.
func (s *OrderCommandsTestSuite) expectWithin() {
	s.mockUow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		})
}

func stocked(id string, priceCents int64, stock int) *catalog.Product {
	return &catalog.Product{
		ID:         catalog.ID(id),
		Slug:       id,
		Name:       "Phone " + id,
		Brand:      "Acme",
		PriceCents: priceCents,
		Stock:      stock,
		Image:      "/products/images/" + id + ".jpg",
	}
}

func placeInput() commands.PlaceOrderInput {
	return commands.PlaceOrderInput{
		Items:        []commands.OrderItemInput{{ProductID: "p1", Quantity: 2}},
		DeliveryTier: "express",
		Address:      order.Address{Name: "Asha", Street: "1 Main St", City: "Pune"},
	}
}

func (s *OrderCommandsTestSuite) TestPlaceOrderSuccess() {
	s.expectWithin()
	s.mockProducts.EXPECT().FindForUpdate(gomock.Any(), catalog.ID("p1")).
		Return(stocked("p1", 10000, 5), nil)
	s.mockProducts.EXPECT().DecrementStock(gomock.Any(), catalog.ID("p1"), 2).
		Return(nil)
	s.mockOrders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	view, err := s.cmds.PlaceOrder(s.ctx, s.userID, placeInput())
	s.Require().NoError(err)

	// 価格はクライアントではなくカタログ行から採られる
	s.Equal(int64(20000), view.SubtotalCents)
	s.Equal(int64(2000), view.TaxCents)
	s.Equal(int64(2500), view.DeliveryCents)
	s.Equal(int64(24500), view.TotalCents)
	s.Equal("express", view.DeliveryTier)
	s.Equal("pending", view.Status)
	s.Equal(s.clock.Now(), view.CreatedAt)
	s.Equal(s.userID, view.UserID)
}

func (s *OrderCommandsTestSuite) TestPlaceOrderEmptyItems() {
	input := placeInput()
	input.Items = nil

	_, err := s.cmds.PlaceOrder(s.ctx, s.userID, input)
	s.Require().ErrorIs(err, commands.ErrEmptyOrder)
}

func (s *OrderCommandsTestSuite) TestPlaceOrderUnknownTier() {
	input := placeInput()
	input.DeliveryTier = "teleport"

	_, err := s.cmds.PlaceOrder(s.ctx, s.userID, input)
	s.Require().ErrorIs(err, commands.ErrInvalidOrder)
}

func (s *OrderCommandsTestSuite) TestPlaceOrderInsufficientStock() {
	s.expectWithin()
	s.mockProducts.EXPECT().FindForUpdate(gomock.Any(), catalog.ID("p1")).
		Return(stocked("p1", 10000, 1), nil)

	_, err := s.cmds.PlaceOrder(s.ctx, s.userID, placeInput())
	s.Require().ErrorIs(err, commands.ErrInsufficientStock)
}

func (s *OrderCommandsTestSuite) TestPlaceOrderProductGone() {
	s.expectWithin()
	s.mockProducts.EXPECT().FindForUpdate(gomock.Any(), catalog.ID("p1")).
		Return(nil, infra.WrapRepoErr("product not found", nil, infra.KindNotFound))

	_, err := s.cmds.PlaceOrder(s.ctx, s.userID, placeInput())
	s.Require().ErrorIs(err, commands.ErrProductNotFound)
}

func (s *OrderCommandsTestSuite) TestPlaceOrderZeroQuantity() {
	s.expectWithin()
	input := placeInput()
	input.Items[0].Quantity = 0

	_, err := s.cmds.PlaceOrder(s.ctx, s.userID, input)
	s.Require().ErrorIs(err, commands.ErrInvalidOrder)
}

func (s *OrderCommandsTestSuite) TestPlaceOrderMissingAddress() {
	s.expectWithin()
	s.mockProducts.EXPECT().FindForUpdate(gomock.Any(), catalog.ID("p1")).
		Return(stocked("p1", 10000, 5), nil)
	s.mockProducts.EXPECT().DecrementStock(gomock.Any(), catalog.ID("p1"), 2).
		Return(nil)

	input := placeInput()
	input.Address = order.Address{}

	_, err := s.cmds.PlaceOrder(s.ctx, s.userID, input)
	s.Require().ErrorIs(err, commands.ErrInvalidOrder)
}
