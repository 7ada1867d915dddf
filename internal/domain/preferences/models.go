package preferences

import "time"

// Theme 界面主题
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// InstallPromptCooldown 用户关闭安装提示后不再提示的时长
const InstallPromptCooldown = 7 * 24 * time.Hour

// Preferences 客户端偏好
type Preferences struct {
	Theme              Theme
	InstallDismissedAt *time.Time
}

// ShouldPromptInstall 判断是否应再次显示安装提示
func (p *Preferences) ShouldPromptInstall(now time.Time) bool {
	if p.InstallDismissedAt == nil {
		return true
	}
	return now.Sub(*p.InstallDismissedAt) >= InstallPromptCooldown
}

// ParseTheme 解析主题，未知值回退为 light
func ParseTheme(value string) Theme {
	if Theme(value) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Repository 偏好持久化接口
type Repository interface {
	Load() (*Preferences, error)
	SaveTheme(theme Theme) error
	SaveInstallDismissed(at time.Time) error
}
