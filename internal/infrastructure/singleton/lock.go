package singleton

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

const (
	// DefaultPort 默认监听端口
	DefaultPort = ":3001"
	// HealthCheckTimeout 健康检查超时时间
	HealthCheckTimeout = 2 * time.Second
)

// ErrUnhealthy 端口被占用但 /health 未正常响应
var ErrUnhealthy = errors.New("port in use but health check failed")

// CheckAndLock 尝试占用端口
// 端口空闲时返回 listener；已有健康实例时返回 nil, nil（调用者应退出）；
// 端口被其他程序占用时返回 ErrUnhealthy
func CheckAndLock(port string) (net.Listener, error) {
	listener, err := net.Listen("tcp", port)
	if err == nil {
		return listener, nil
	}

	if isAddrInUse(err) {
		ctx, cancel := context.WithTimeout(context.Background(), HealthCheckTimeout)
		defer cancel()
		if Ping(ctx, BaseURL(port)) == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnhealthy, port)
	}

	return nil, fmt.Errorf("failed to listen on %s: %w", port, err)
}

// isAddrInUse 判断监听错误是否为地址已被占用
func isAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	// Windows: WSAEADDRINUSE (10048)
	var errno syscall.Errno
	if errors.As(err, &errno) && errno == 10048 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "address already in use") ||
		strings.Contains(msg, "Only one usage of each socket address")
}

// BaseURL 由监听地址（":3001" 或 "0.0.0.0:3001"）得到本机访问地址
func BaseURL(port string) string {
	host, p, err := net.SplitHostPort(port)
	if err != nil {
		return "http://localhost" + port
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, p)
}

// Ping 检查 baseURL 上的 AMICA 服务是否健康
func Ping(ctx context.Context, baseURL string) error {
	url := strings.TrimSuffix(baseURL, "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create health request: %w", err)
	}

	client := &http.Client{Timeout: HealthCheckTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Status != "ok" {
		return fmt.Errorf("health check returned unexpected body")
	}
	return nil
}
