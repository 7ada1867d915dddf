package conversation

import "errors"

var (
	// ErrNotFound 会话不存在
	ErrNotFound = errors.New("conversation not found")
	// ErrEmptyMessage 消息内容为空
	ErrEmptyMessage = errors.New("message is empty")
)
