package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/incogni100x/jltstones/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetLatestByPartnerCode(ctx context.Context, partnerCode string) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// GetLatestByPartnerCode returns the most recently created order for a
// partner code. Codes are unique going forward, but rows created before the
// constraint existed can share one; the newest wins.
func (r *orderRepository) GetLatestByPartnerCode(ctx context.Context, partnerCode string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("partner_code = ?", partnerCode).
		Order("created_at DESC").
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, err
}
