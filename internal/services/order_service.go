package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/incogni100x/jltstones/internal/models"
	"github.com/incogni100x/jltstones/internal/repository"
	"github.com/incogni100x/jltstones/pkg/codegen"
)

// maxCodeAttempts bounds regeneration when a generated code collides with
// an existing row.
const maxCodeAttempts = 5

// CreateOrderRequest is the intake payload. Numeric fields accept numbers
// or numeric strings so form clients don't have to pre-convert.
type CreateOrderRequest struct {
	OrderDate          string       `json:"order_date"`
	PartnerCode        string       `json:"partner_code"`
	PartnerName        string       `json:"partner_name"`
	ISO                string       `json:"iso"`
	SalesPerson        string       `json:"sales_person"`
	Manager            string       `json:"manager"`
	PaymentType        string       `json:"payment_type"`
	DistributionCarat  models.Float `json:"distribution_carat"`
	ExternalEmployees  models.Int   `json:"external_employees"`
	StoneName          string       `json:"stone_name"`
	QuantityCarat      models.Float `json:"quantity_carat"`
	PurchasePrice      models.Float `json:"purchase_price"`
	MarketSellingPrice models.Float `json:"market_selling_price"`
	UserImageURL       string       `json:"user_image_url"`
}

// Validate checks required fields in their documented order and reports the
// first one missing. Empty strings and zero numbers both count as missing.
func (r *CreateOrderRequest) Validate() error {
	checks := []struct {
		field string
		ok    bool
	}{
		{"order_date", r.OrderDate != ""},
		{"partner_name", r.PartnerName != ""},
		{"sales_person", r.SalesPerson != ""},
		{"manager", r.Manager != ""},
		{"payment_type", r.PaymentType != ""},
		{"distribution_carat", r.DistributionCarat != 0},
		{"external_employees", r.ExternalEmployees != 0},
		{"stone_name", r.StoneName != ""},
		{"quantity_carat", r.QuantityCarat != 0},
		{"purchase_price", r.PurchasePrice != 0},
		{"market_selling_price", r.MarketSellingPrice != 0},
	}
	for _, c := range checks {
		if !c.ok {
			return models.NewMissingFieldError(c.field)
		}
	}
	return nil
}

type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error)
	GetOrderByPartnerCode(ctx context.Context, partnerCode string) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	GetOrders(ctx context.Context, limit, offset int) ([]models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderDate:          req.OrderDate,
		PartnerName:        req.PartnerName,
		ISO:                req.ISO,
		SalesPerson:        req.SalesPerson,
		Manager:            req.Manager,
		PaymentType:        req.PaymentType,
		DistributionCarat:  float64(req.DistributionCarat),
		ExternalEmployees:  int(req.ExternalEmployees),
		StoneName:          req.StoneName,
		QuantityCarat:      float64(req.QuantityCarat),
		PurchasePrice:      float64(req.PurchasePrice),
		MarketSellingPrice: float64(req.MarketSellingPrice),
		UserImageURL:       req.UserImageURL,
	}

	s.calculateProfit(order)

	// Callers may bring their own partner code; order numbers are always
	// issued here.
	codeProvided := req.PartnerCode != ""

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		if codeProvided {
			order.PartnerCode = req.PartnerCode
		} else {
			order.PartnerCode = codegen.GeneratePartnerCode()
		}
		order.OrderNumber = codegen.GenerateOrderNumber()

		err := s.orderRepo.Create(ctx, order)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Collision on a unique code; roll new ones and try again.
	}

	if codeProvided {
		return nil, &models.ValidationError{
			Field:   "partner_code",
			Message: fmt.Sprintf("Partner code %s is already in use", req.PartnerCode),
		}
	}
	return nil, fmt.Errorf("failed to generate a unique order code after %d attempts", maxCodeAttempts)
}

// calculateProfit fills the derived profit columns at insert time.
func (s *orderService) calculateProfit(order *models.Order) {
	order.ProfitPerCarat = order.MarketSellingPrice - order.PurchasePrice
	order.TotalProfit = order.ProfitPerCarat * order.QuantityCarat
}

func (s *orderService) GetOrderByPartnerCode(ctx context.Context, partnerCode string) (*models.Order, error) {
	return s.orderRepo.GetLatestByPartnerCode(ctx, partnerCode)
}

func (s *orderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByOrderNumber(ctx, orderNumber)
}

func (s *orderService) GetOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.orderRepo.GetAll(ctx, limit, offset)
}
