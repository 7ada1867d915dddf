package conversation

// Repository 会话列表持久化接口
// 整个列表作为一个整体读写，与浏览器 localStorage 的单键存储保持一致
type Repository interface {
	// LoadAll 读取全部会话（顺序即保存时的顺序）
	LoadAll() ([]*Conversation, error)

	// SaveAll 覆盖保存全部会话
	SaveAll(conversations []*Conversation) error
}
