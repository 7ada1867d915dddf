package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// 客户端本地存储键
const (
	KeyConversations    = "amica-conversations"
	KeyInstallDismissed = "amica-install-dismissed"
	KeyTheme            = "amica-theme"
)

// LocalStorage 字符串键值存储，语义与浏览器 localStorage 一致
type LocalStorage interface {
	// GetItem 读取键值，不存在时 ok 为 false
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// localStorage SQLite 实现
type localStorage struct {
	db *sql.DB
}

// NewLocalStorage 创建本地存储
func NewLocalStorage(db *sql.DB) LocalStorage {
	return &localStorage{db: db}
}

// 编译期接口检查
var _ LocalStorage = (*localStorage)(nil)

// initLocalStorageTable 初始化键值表
func initLocalStorageTable(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS local_storage (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create local_storage table: %w", err)
	}
	return nil
}

// GetItem 读取键值
func (s *localStorage) GetItem(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem 写入键值（覆盖）
func (s *localStorage) SetItem(key, value string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO local_storage (key, value, updated_at)
		VALUES (?, ?, ?)`,
		key, value, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to set item %s: %w", key, err)
	}
	return nil
}

// RemoveItem 删除键值
func (s *localStorage) RemoveItem(key string) error {
	if _, err := s.db.Exec(`DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to remove item %s: %w", key, err)
	}
	return nil
}
