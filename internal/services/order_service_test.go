package services_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/incogni100x/jltstones/internal/models"
	"github.com/incogni100x/jltstones/internal/services"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetLatestByPartnerCode(ctx context.Context, partnerCode string) (*models.Order, error) {
	args := m.Called(ctx, partnerCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Order, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func validRequest() *services.CreateOrderRequest {
	return &services.CreateOrderRequest{
		OrderDate:          "2026-09-01",
		PartnerName:        "Acme Gems",
		SalesPerson:        "Dana",
		Manager:            "Robin",
		PaymentType:        "wire",
		DistributionCarat:  12.5,
		ExternalEmployees:  2,
		StoneName:          "Ruby",
		QuantityCarat:      3,
		PurchasePrice:      100,
		MarketSellingPrice: 150,
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := services.NewOrderService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := svc.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Regexp(t, regexp.MustCompile(`^JLX\d{6}$`), order.PartnerCode)
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{4}-\d{4}$`), order.OrderNumber)

	// Derived profit columns are filled at insert time.
	assert.Equal(t, 50.0, order.ProfitPerCarat)
	assert.Equal(t, 150.0, order.TotalProfit)

	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_CoercesStringNumbers(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := services.NewOrderService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil).Once()

	// Form clients send numeric fields as strings.
	payload := `{
		"order_date": "2026-09-01",
		"partner_name": "Acme Gems",
		"sales_person": "Dana",
		"manager": "Robin",
		"payment_type": "wire",
		"distribution_carat": "12.5",
		"external_employees": "2",
		"stone_name": "Ruby",
		"quantity_carat": "3",
		"purchase_price": "100",
		"market_selling_price": "150"
	}`

	var req services.CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	order, err := svc.CreateOrder(context.Background(), &req)
	require.NoError(t, err)

	assert.Equal(t, 12.5, order.DistributionCarat)
	assert.Equal(t, 2, order.ExternalEmployees)
	assert.Equal(t, 3.0, order.QuantityCarat)
	assert.Equal(t, 100.0, order.PurchasePrice)
	assert.Equal(t, 150.0, order.MarketSellingPrice)
	assert.Equal(t, 50.0, order.ProfitPerCarat)
	assert.Equal(t, 150.0, order.TotalProfit)
}

func TestOrderService_CreateOrder_FirstMissingFieldWins(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := services.NewOrderService(mockRepo)

	req := validRequest()
	req.Manager = ""
	req.PaymentType = ""

	_, err := svc.CreateOrder(context.Background(), req)
	require.Error(t, err)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "manager", vErr.Field)
	assert.Contains(t, err.Error(), "manager")

	mockRepo.AssertNotCalled(t, "Create")
}

func TestOrderService_CreateOrder_ZeroNumericIsMissing(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := services.NewOrderService(mockRepo)

	req := validRequest()
	req.DistributionCarat = 0

	_, err := svc.CreateOrder(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distribution_carat")
}

func TestOrderService_CreateOrder_RetriesOnDuplicateCode(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := services.NewOrderService(mockRepo)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Return(gorm.ErrDuplicatedKey).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Return(nil).Once()

	order, err := svc.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, order)

	mockRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestOrderService_CreateOrder_SuppliedCodeConflict(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := services.NewOrderService(mockRepo)

	// A caller-supplied code is never silently replaced, so every attempt
	// collides.
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Order")).
		Return(gorm.ErrDuplicatedKey)

	req := validRequest()
	req.PartnerCode = "JLX123456"

	_, err := svc.CreateOrder(context.Background(), req)
	require.Error(t, err)

	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, err.Error(), "JLX123456")
}

func TestOrderService_GetOrderByPartnerCode_NotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	svc := services.NewOrderService(mockRepo)

	mockRepo.On("GetLatestByPartnerCode", mock.Anything, "JLX000000").
		Return(nil, models.ErrOrderNotFound).Once()

	_, err := svc.GetOrderByPartnerCode(context.Background(), "JLX000000")
	require.ErrorIs(t, err, models.ErrOrderNotFound)
}
