package wire

import (
	appConversation "github.com/amica/backend/internal/application/conversation"
	appPreferences "github.com/amica/backend/internal/application/preferences"
	"github.com/amica/backend/internal/application/voice"
	"github.com/amica/backend/internal/infrastructure/amicaapi"
	"github.com/amica/backend/internal/infrastructure/config"
)

// Client 终端客户端依赖集合
type Client struct {
	Config      *config.ClientConfig
	Store       *appConversation.Store
	Session     *appConversation.Session
	Preferences *appPreferences.Service
	API         *amicaapi.Client
	// Player 未配置播放命令时为 nil
	Player *voice.Player
}

// NewClient 创建客户端依赖集合
func NewClient(
	cfg *config.ClientConfig,
	store *appConversation.Store,
	session *appConversation.Session,
	preferences *appPreferences.Service,
	api *amicaapi.Client,
	player *voice.Player,
) *Client {
	return &Client{
		Config:      cfg,
		Store:       store,
		Session:     session,
		Preferences: preferences,
		API:         api,
		Player:      player,
	}
}
