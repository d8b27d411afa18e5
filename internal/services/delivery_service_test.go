package services_test

import (
	"fmt"
	"testing"

	"warung/internal/models"
	"warung/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestDeliveryService_AcceptOrder(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	dmID := "dm-1"
	order := &models.Order{ID: "order-1", Status: models.OrderOnTheWay, DeliveryManID: &dmID}

	mockDelivery.On("Claim", "dm-1", "order-1").Return(nil).Once()
	mockOrders.On("Assign", "order-1", "dm-1").Return(order, nil).Once()

	got, err := service.AcceptOrder("dm-1", "order-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderOnTheWay, got.Status)
	assert.Equal(t, "dm-1", *got.DeliveryManID)
	mockDelivery.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_AcceptOrder_AlreadyBusy(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	busyErr := fmt.Errorf("delivery man dm-1 already has an active delivery: %w", models.ErrConflict)
	mockDelivery.On("Claim", "dm-1", "order-1").Return(busyErr).Once()

	_, err := service.AcceptOrder("dm-1", "order-1")
	assert.ErrorIs(t, err, models.ErrConflict)

	// A failed claim must leave the order untouched.
	mockOrders.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
	mockDelivery.AssertNotCalled(t, "Release", mock.Anything)
	mockDelivery.AssertExpectations(t)
}

func TestDeliveryService_AcceptOrder_OrderMissingCompensates(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	mockDelivery.On("Claim", "dm-1", "gone").Return(nil).Once()
	mockOrders.On("Assign", "gone", "dm-1").
		Return(nil, fmt.Errorf("order with ID gone: %w", models.ErrNotFound)).Once()
	// The claim must be rolled back so the delivery man is available again.
	mockDelivery.On("Release", "dm-1").Return(nil).Once()

	_, err := service.AcceptOrder("dm-1", "gone")
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockDelivery.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_AcceptOrder_OrderAlreadyClaimedCompensates(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	mockDelivery.On("Claim", "dm-2", "order-1").Return(nil).Once()
	// The order update is conditional on the order still awaiting delivery;
	// losing that race must roll the claim back, not strand dm-2 busy.
	mockOrders.On("Assign", "order-1", "dm-2").
		Return(nil, fmt.Errorf("order order-1 is not awaiting delivery: %w", models.ErrConflict)).Once()
	mockDelivery.On("Release", "dm-2").Return(nil).Once()

	_, err := service.AcceptOrder("dm-2", "order-1")
	assert.ErrorIs(t, err, models.ErrConflict)
	mockDelivery.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_AssignDelivery(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	dmID := "dm-2"
	man := &models.DeliveryMan{ID: dmID, Status: models.StatusBusy}
	order := &models.Order{ID: "order-1", Status: models.OrderOnTheWay, DeliveryManID: &dmID}

	mockDelivery.On("ClaimFirstAvailable", "order-1").Return(man, nil).Once()
	mockOrders.On("Assign", "order-1", "dm-2").Return(order, nil).Once()

	gotOrder, gotMan, err := service.AssignDelivery("order-1")
	assert.NoError(t, err)
	assert.Equal(t, "dm-2", gotMan.ID)
	assert.Equal(t, models.OrderOnTheWay, gotOrder.Status)
	mockDelivery.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_AssignDelivery_NoCapacity(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	mockDelivery.On("ClaimFirstAvailable", "order-1").
		Return(nil, fmt.Errorf("no available delivery men at the moment: %w", models.ErrNoCapacity)).Once()

	_, _, err := service.AssignDelivery("order-1")
	assert.ErrorIs(t, err, models.ErrNoCapacity)
	mockOrders.AssertNotCalled(t, "Assign", mock.Anything, mock.Anything)
	mockDelivery.AssertExpectations(t)
}

func TestDeliveryService_AssignDelivery_OrderMissingCompensates(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	man := &models.DeliveryMan{ID: "dm-2", Status: models.StatusBusy}
	mockDelivery.On("ClaimFirstAvailable", "gone").Return(man, nil).Once()
	mockOrders.On("Assign", "gone", "dm-2").
		Return(nil, fmt.Errorf("order with ID gone: %w", models.ErrNotFound)).Once()
	mockDelivery.On("Release", "dm-2").Return(nil).Once()

	_, _, err := service.AssignDelivery("gone")
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockDelivery.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_MarkDelivered(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	dmID := "dm-1"
	order := &models.Order{ID: "order-1", Status: models.OrderOnTheWay, DeliveryManID: &dmID}

	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrders.On("UpdateStatus", "order-1", models.OrderDelivered).Return(nil).Once()
	mockDelivery.On("Release", "dm-1").Return(nil).Once()

	got, err := service.MarkDelivered("dm-1", "order-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, got.Status)
	mockDelivery.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_MarkDelivered_NotAssignedToCaller(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	otherID := "dm-9"
	order := &models.Order{ID: "order-1", Status: models.OrderOnTheWay, DeliveryManID: &otherID}

	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()

	_, err := service.MarkDelivered("dm-1", "order-1")
	assert.ErrorIs(t, err, models.ErrForbidden)

	// The order status must be untouched.
	mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	mockDelivery.AssertNotCalled(t, "Release", mock.Anything)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_MarkDelivered_OrderNotFound(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	mockOrders.On("GetByID", "gone").
		Return(nil, fmt.Errorf("order with ID gone: %w", models.ErrNotFound)).Once()

	_, err := service.MarkDelivered("dm-1", "gone")
	assert.ErrorIs(t, err, models.ErrNotFound)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_CompleteDelivery(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	dmID := "dm-1"
	order := &models.Order{ID: "order-1", Status: models.OrderOnTheWay, DeliveryManID: &dmID}

	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrders.On("UpdateStatus", "order-1", models.OrderDelivered).Return(nil).Once()
	mockDelivery.On("Release", "dm-1").Return(nil).Once()

	got, err := service.CompleteDelivery("order-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderDelivered, got.Status)
	mockDelivery.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_CompleteDelivery_Unassigned(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	// A pending order with no delivery man can still be force-completed;
	// there is then nobody to release.
	order := &models.Order{ID: "order-1", Status: models.OrderPending}

	mockOrders.On("GetByID", "order-1").Return(order, nil).Once()
	mockOrders.On("UpdateStatus", "order-1", models.OrderDelivered).Return(nil).Once()

	_, err := service.CompleteDelivery("order-1")
	assert.NoError(t, err)
	mockDelivery.AssertNotCalled(t, "Release", mock.Anything)
	mockOrders.AssertExpectations(t)
}

func TestDeliveryService_CreateDeliveryMan(t *testing.T) {
	mockDelivery := new(MockDeliveryManRepository)
	mockOrders := new(MockOrderRepository)
	service := services.NewDeliveryService(mockDelivery, mockOrders, nil)

	man := &models.DeliveryMan{
		Name:     "Budi Kurir",
		Email:    "budi@example.com",
		Phone:    "08123456789",
		Password: "riderpass",
	}

	var stored *models.DeliveryMan
	mockDelivery.On("GetByEmail", man.Email).Return(nil, notFoundErr("delivery man")).Once()
	mockDelivery.On("GetByPhone", man.Phone).Return(nil, notFoundErr("delivery man")).Once()
	mockDelivery.On("Create", mock.AnythingOfType("*models.DeliveryMan")).Run(func(args mock.Arguments) {
		stored = args.Get(0).(*models.DeliveryMan)
	}).Return(nil).Once()

	err := service.CreateDeliveryMan(man)
	assert.NoError(t, err)
	assert.NotEqual(t, "riderpass", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("riderpass")))
	assert.Equal(t, models.RoleDeliveryMan, stored.Role)
	assert.Equal(t, models.StatusAvailable, stored.Status)
	mockDelivery.AssertExpectations(t)
}
