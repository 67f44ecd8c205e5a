package stats

import (
	"context"
	"time"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/order"
)

// OrderRepository is the read-only view of the shop's order store that the
// aggregator needs: IDs in a creation window, then the full records.
type OrderRepository interface {
	ListOrderIDsCreatedBetween(ctx context.Context, start, end time.Time) ([]int64, error)
	FindOrderByID(ctx context.Context, id int64) (*order.Order, error)
}
