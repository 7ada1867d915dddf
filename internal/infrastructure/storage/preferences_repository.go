package storage

import (
	"strconv"
	"time"

	"github.com/amica/backend/internal/domain/preferences"
)

// preferencesRepository 偏好仓储：主题与安装提示关闭时间
type preferencesRepository struct {
	store LocalStorage
}

// NewPreferencesRepository 创建偏好仓储
func NewPreferencesRepository(store LocalStorage) preferences.Repository {
	return &preferencesRepository{store: store}
}

var _ preferences.Repository = (*preferencesRepository)(nil)

// Load 读取偏好，缺失或非法值使用默认
func (r *preferencesRepository) Load() (*preferences.Preferences, error) {
	prefs := &preferences.Preferences{Theme: preferences.ThemeLight}

	theme, ok, err := r.store.GetItem(KeyTheme)
	if err != nil {
		return nil, err
	}
	if ok {
		prefs.Theme = preferences.ParseTheme(theme)
	}

	dismissed, ok, err := r.store.GetItem(KeyInstallDismissed)
	if err != nil {
		return nil, err
	}
	if ok {
		// 以 Unix 毫秒保存
		if ms, err := strconv.ParseInt(dismissed, 10, 64); err == nil {
			t := time.UnixMilli(ms)
			prefs.InstallDismissedAt = &t
		}
	}

	return prefs, nil
}

// SaveTheme 保存主题
func (r *preferencesRepository) SaveTheme(theme preferences.Theme) error {
	return r.store.SetItem(KeyTheme, string(theme))
}

// SaveInstallDismissed 保存安装提示关闭时间
func (r *preferencesRepository) SaveInstallDismissed(at time.Time) error {
	return r.store.SetItem(KeyInstallDismissed, strconv.FormatInt(at.UnixMilli(), 10))
}
