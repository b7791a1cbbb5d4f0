package usecase

import (
	"context"
	"errors"

	domainErrors "github.com/polkiloo/bundlemart/internal/domain/errors"
	"github.com/polkiloo/bundlemart/internal/domain/repository"
)

// SettingsUseCase exposes operator switches with configured defaults.
type SettingsUseCase struct {
	settings    repository.SettingsRepository
	defaultPush bool
}

// NewSettingsUseCase constructs SettingsUseCase. defaultPush applies until an operator sets the toggle.
func NewSettingsUseCase(settings repository.SettingsRepository, defaultPush bool) *SettingsUseCase {
	return &SettingsUseCase{settings: settings, defaultPush: defaultPush}
}

// PushEnabled reads the toggle at call time.
func (u *SettingsUseCase) PushEnabled(ctx context.Context) (bool, error) {
	enabled, err := u.settings.PushEnabled(ctx)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return u.defaultPush, nil
	}
	return enabled, err
}

// SetPushEnabled stores the toggle.
func (u *SettingsUseCase) SetPushEnabled(ctx context.Context, enabled bool) error {
	return u.settings.SetPushEnabled(ctx, enabled)
}
