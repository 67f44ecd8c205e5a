package storage

import (
	"context"
	"time"

	"github.com/mateusz-zadorozny/woocommerce-order-stats-mpress/internal/types/order"
)

// OrderRepository covers the read-only order access the aggregator needs.
type OrderRepository interface {
	ListOrderIDsCreatedBetween(ctx context.Context, start, end time.Time) ([]int64, error)
	FindOrderByID(ctx context.Context, id int64) (*order.Order, error)
}

// SettingsRepository is the persisted key/value settings surface.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Storage unions every repository plus connection management.
type Storage interface {
	OrderRepository
	SettingsRepository

	Ping(ctx context.Context) error
	Close() error
}
