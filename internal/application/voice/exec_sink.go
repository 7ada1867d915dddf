package voice

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/amica/backend/internal/infrastructure/config"
)

// ExecSink 通过外部命令播放音频，例如 "mpv --no-video" 或 "afplay"
// 音频写入临时文件后作为最后一个参数传给命令
type ExecSink struct {
	command []string
}

// NewExecSink 解析播放命令，命令为空时返回 nil
func NewExecSink(command string) *ExecSink {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return &ExecSink{command: fields}
}

// Play 实现 Sink
func (s *ExecSink) Play(ctx context.Context, audio []byte, format string) error {
	f, err := os.CreateTemp("", "amica-*."+format)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close audio file: %w", err)
	}

	args := append(append([]string{}, s.command[1:]...), f.Name())
	cmd := exec.CommandContext(ctx, s.command[0], args...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("audio player %q failed: %w", s.command[0], err)
	}
	return nil
}

// ProvidePlayer 按配置创建播放器；未配置播放命令时返回 nil，表示不朗读
func ProvidePlayer(cfg *config.ClientConfig) *Player {
	sink := NewExecSink(cfg.AudioPlayer)
	if sink == nil {
		return nil
	}
	return NewPlayer(sink)
}
