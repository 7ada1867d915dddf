package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	// EnvDataDir 客户端数据目录
	EnvDataDir = "AMICA_DATA_DIR"
	// DefaultDataDirName 位于用户主目录下
	DefaultDataDirName = ".amica"
)

var (
	dataDirOnce sync.Once
	dataDirPath string
)

// GetDataDir 终端客户端的本地数据目录（会话、主题、安装提示）
// AMICA_DATA_DIR 支持 ~/ 前缀；未设置时为 ~/.amica，取不到主目录时退回当前目录下的 .amica
// 结果在进程内缓存
func GetDataDir() string {
	dataDirOnce.Do(func() {
		dataDirPath = resolveDataDir(os.Getenv(EnvDataDir))
	})
	return dataDirPath
}

// DataPath 数据目录下的路径
func DataPath(elem ...string) string {
	return filepath.Join(append([]string{GetDataDir()}, elem...)...)
}

func resolveDataDir(dir string) string {
	home, homeErr := os.UserHomeDir()
	switch {
	case dir == "":
		if homeErr != nil {
			return DefaultDataDirName
		}
		return filepath.Join(home, DefaultDataDirName)
	case dir == "~" && homeErr == nil:
		return home
	case strings.HasPrefix(dir, "~/") && homeErr == nil:
		return filepath.Join(home, dir[2:])
	default:
		return filepath.Clean(dir)
	}
}

// ResetDataDir 清除缓存，仅测试使用
func ResetDataDir() {
	dataDirOnce = sync.Once{}
	dataDirPath = ""
}
