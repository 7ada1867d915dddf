package voice

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/amica/backend/internal/infrastructure/log"
)

// ErrEmptyAudio 没有可播放的音频
var ErrEmptyAudio = errors.New("audio is empty")

// Sink 实际输出音频的设备，ctx 取消时必须尽快返回
type Sink interface {
	Play(ctx context.Context, audio []byte, format string) error
}

// playback 一次正在进行的播放
type playback struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Player 持有唯一的“当前播放”
// 新的 Play 会先停止并等待上一段结束；OnFinished 只在播放自然结束或被 Stop 后触发
type Player struct {
	sink   Sink
	logger *slog.Logger

	// ctrl 串行化 Play/Stop
	ctrl sync.Mutex

	mu         sync.Mutex
	current    *playback
	onFinished func()
}

// NewPlayer 创建播放器
func NewPlayer(sink Sink) *Player {
	return &Player{
		sink:   sink,
		logger: log.NewModuleLogger("voice", "player"),
	}
}

// OnFinished 注册播放结束回调（用于重新开启语音输入）
func (p *Player) OnFinished(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinished = fn
}

// Play 停止上一段播放后开始新的播放，立即返回
func (p *Player) Play(ctx context.Context, audio []byte, format string) error {
	if len(audio) == 0 {
		return ErrEmptyAudio
	}

	p.ctrl.Lock()
	defer p.ctrl.Unlock()

	// 先摘下上一段，被替换的播放不触发回调
	p.mu.Lock()
	prev := p.current
	p.current = nil
	p.mu.Unlock()
	if prev != nil {
		prev.cancel()
		<-prev.done
	}

	playCtx, cancel := context.WithCancel(ctx)
	pb := &playback{cancel: cancel, done: make(chan struct{})}

	p.mu.Lock()
	p.current = pb
	p.mu.Unlock()

	go p.run(playCtx, pb, audio, format)
	return nil
}

func (p *Player) run(ctx context.Context, pb *playback, audio []byte, format string) {
	err := p.sink.Play(ctx, audio, format)
	pb.cancel()

	if err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Warn("Audio playback failed",
			"format", format,
			"bytes", len(audio),
			"error", err,
		)
	}

	p.mu.Lock()
	owned := p.current == pb
	if owned {
		p.current = nil
	}
	fn := p.onFinished
	p.mu.Unlock()

	close(pb.done)

	if owned && fn != nil {
		fn()
	}
}

// Stop 停止当前播放并等待其结束
func (p *Player) Stop() {
	p.ctrl.Lock()
	defer p.ctrl.Unlock()

	p.mu.Lock()
	pb := p.current
	p.mu.Unlock()

	if pb == nil {
		return
	}
	pb.cancel()
	<-pb.done
}

// Wait 等待当前播放结束
func (p *Player) Wait() {
	p.mu.Lock()
	pb := p.current
	p.mu.Unlock()

	if pb != nil {
		<-pb.done
	}
}

// Playing 是否正在播放
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}
