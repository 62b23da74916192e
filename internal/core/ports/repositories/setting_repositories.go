package repositories

import "context"

// SettingReader reads process-wide settings maintained by administrators.
type SettingReader interface {
	// GetSetting returns the raw value of a setting, or apperrors.ErrNotFound.
	GetSetting(ctx context.Context, key string) (string, error)
}
