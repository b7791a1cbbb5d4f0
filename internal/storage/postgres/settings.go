package postgres

import (
	"context"
	"fmt"
	"strconv"
)

const pushEnabledKey = "push_enabled"

func (r *settingsRepository) PushEnabled(ctx context.Context) (bool, error) {
	const query = `SELECT value FROM settings WHERE key=$1`
	var raw string
	if err := r.storage.pool.QueryRow(ctx, query, pushEnabledKey).Scan(&raw); err != nil {
		return false, notFound(err)
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s setting: %w", pushEnabledKey, err)
	}
	return enabled, nil
}

func (r *settingsRepository) SetPushEnabled(ctx context.Context, enabled bool) error {
	const query = `INSERT INTO settings (key, value) VALUES ($1, $2)
                   ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	_, err := r.storage.pool.Exec(ctx, query, pushEnabledKey, strconv.FormatBool(enabled))
	return err
}
