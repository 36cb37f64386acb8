package models

import (
	"time"
)

type Order struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	OrderNumber        string    `json:"order_number" gorm:"uniqueIndex;not null"`
	PartnerCode        string    `json:"partner_code" gorm:"uniqueIndex;not null"`
	OrderDate          string    `json:"order_date" gorm:"not null"`
	PartnerName        string    `json:"partner_name" gorm:"not null"`
	ISO                string    `json:"iso" gorm:"column:iso"`
	SalesPerson        string    `json:"sales_person" gorm:"not null"`
	Manager            string    `json:"manager" gorm:"not null"`
	PaymentType        string    `json:"payment_type" gorm:"not null"`
	DistributionCarat  float64   `json:"distribution_carat" gorm:"not null"`
	ExternalEmployees  int       `json:"external_employees" gorm:"not null"`
	StoneName          string    `json:"stone_name" gorm:"not null"`
	QuantityCarat      float64   `json:"quantity_carat" gorm:"not null"`
	PurchasePrice      float64   `json:"purchase_price" gorm:"not null"`
	MarketSellingPrice float64   `json:"market_selling_price" gorm:"not null"`
	ProfitPerCarat     float64   `json:"profit_per_carat"`
	TotalProfit        float64   `json:"total_profit"`
	UserImageURL       string    `json:"user_image_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
