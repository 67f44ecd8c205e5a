package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusRefunded   OrderStatus = "refunded"
	StatusCancelled  OrderStatus = "cancelled"
	StatusFailed     OrderStatus = "failed"
)

// Order is read-only for this service: the shop writes orders, we only
// aggregate them. Statuses form an open set, the constants above are the
// common ones.
type Order struct {
	ID            int64           `db:"id" json:"id"`
	Status        OrderStatus     `db:"status" json:"status"`
	Total         decimal.Decimal `db:"total" json:"total"`
	ShippingTotal decimal.Decimal `db:"shipping_total" json:"shipping_total"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// NetValue is the order total minus shipping.
func (o *Order) NetValue() decimal.Decimal {
	return o.Total.Sub(o.ShippingTotal)
}
