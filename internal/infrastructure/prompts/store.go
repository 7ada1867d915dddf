package prompts

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/amica/backend/internal/infrastructure/config"
	"github.com/amica/backend/internal/infrastructure/log"
)

// reloadDebounce 文件变更防抖时间
const reloadDebounce = 200 * time.Millisecond

// Store 持有当前模板，配置文件变更时热加载
type Store struct {
	path    string
	mu      sync.RWMutex
	current *Templates
	logger  *slog.Logger

	watcher *fsnotify.Watcher
	timer   *time.Timer
	timerMu sync.Mutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewStore 创建模板存储
// 未配置文件时只使用内置模板
func NewStore(cfg *config.PromptsConfig) (*Store, error) {
	s := &Store{
		path:    cfg.File,
		current: Defaults(),
		logger:  log.NewModuleLogger("prompts", "store"),
		stopCh:  make(chan struct{}),
	}
	if s.path == "" {
		return s, nil
	}

	t, err := LoadFile(s.path)
	if err != nil {
		return nil, err
	}
	s.current = t
	return s, nil
}

// Get 返回当前模板快照
func (s *Store) Get() *Templates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Start 监听模板文件
func (s *Store) Start() error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// 监听目录，兼容编辑器的原子替换写入
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		_ = watcher.Close()
		return err
	}
	s.watcher = watcher

	s.wg.Add(1)
	go s.watchLoop()

	s.logger.Info("Watching prompts file", "path", s.path)
	return nil
}

// Stop 停止监听
func (s *Store) Stop() {
	if s.watcher == nil {
		return
	}
	close(s.stopCh)
	_ = s.watcher.Close()
	s.wg.Wait()

	s.timerMu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerMu.Unlock()
}

func (s *Store) watchLoop() {
	defer s.wg.Done()

	target := filepath.Clean(s.path)
	for {
		select {
		case <-s.stopCh:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				s.scheduleReload()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Prompts watcher error", "error", err)
		}
	}
}

// scheduleReload 防抖后重新加载
func (s *Store) scheduleReload() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(reloadDebounce, s.reload)
}

// reload 重新读取文件，失败时保留旧模板
func (s *Store) reload() {
	t, err := LoadFile(s.path)
	if err != nil {
		s.logger.Warn("Failed to reload prompts, keeping previous version",
			"path", s.path,
			"error", err,
		)
		return
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	s.logger.Info("Prompts reloaded", "path", s.path)
}
