package repository

import "context"

// SettingsRepository stores operator switches. PushEnabled returns ErrNotFound until set.
type SettingsRepository interface {
	PushEnabled(ctx context.Context) (bool, error)
	SetPushEnabled(ctx context.Context, enabled bool) error
}
