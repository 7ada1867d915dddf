package preferences

import (
	"fmt"
	"log/slog"
	"time"

	domainPreferences "github.com/amica/backend/internal/domain/preferences"
	"github.com/amica/backend/internal/infrastructure/log"
)

// Service 客户端偏好服务
type Service struct {
	repo   domainPreferences.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService 创建偏好服务
func NewService(repo domainPreferences.Repository) *Service {
	return &Service{
		repo:   repo,
		logger: log.NewModuleLogger("preferences", "service"),
		now:    time.Now,
	}
}

// Theme 当前主题
func (s *Service) Theme() (domainPreferences.Theme, error) {
	prefs, err := s.repo.Load()
	if err != nil {
		return domainPreferences.ThemeLight, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs.Theme, nil
}

// SetTheme 保存主题，未知值按 light 处理
func (s *Service) SetTheme(value string) (domainPreferences.Theme, error) {
	theme := domainPreferences.ParseTheme(value)
	if err := s.repo.SaveTheme(theme); err != nil {
		return theme, fmt.Errorf("failed to save theme: %w", err)
	}
	s.logger.Debug("Theme saved", "theme", theme)
	return theme, nil
}

// ToggleTheme 在 light 与 dark 之间切换
func (s *Service) ToggleTheme() (domainPreferences.Theme, error) {
	current, err := s.Theme()
	if err != nil {
		return current, err
	}
	next := domainPreferences.ThemeDark
	if current == domainPreferences.ThemeDark {
		next = domainPreferences.ThemeLight
	}
	return s.SetTheme(string(next))
}

// DismissInstall 记录用户关闭安装提示的时间
func (s *Service) DismissInstall() error {
	if err := s.repo.SaveInstallDismissed(s.now()); err != nil {
		return fmt.Errorf("failed to save install dismissal: %w", err)
	}
	return nil
}

// ShouldPromptInstall 是否应显示安装提示
func (s *Service) ShouldPromptInstall() (bool, error) {
	prefs, err := s.repo.Load()
	if err != nil {
		return false, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs.ShouldPromptInstall(s.now()), nil
}
