package settings

import "context"

// Setting keys as stored in the key/value table.
const (
	KeyAPIEnabled     = "api_enabled"
	KeyPreloadEnabled = "preload_enabled"
	KeyPreloadTime    = "preload_time"
	KeyAPIKey         = "api_key"
)

// Repository is the persistent key/value store backing the settings
// snapshot. GetSetting returns sql.ErrNoRows-compatible errors for absent
// keys; the service treats any lookup failure as "unset".
type Repository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}
