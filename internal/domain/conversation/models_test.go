package conversation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amica/backend/internal/domain/chat"
)

func TestTitleFrom(t *testing.T) {
	assert.Equal(t, "Ciao", TitleFrom("Ciao"))
	assert.Equal(t, strings.Repeat("à", 30), TitleFrom(strings.Repeat("à", 30)))
	assert.Equal(t, strings.Repeat("à", 30)+"...", TitleFrom(strings.Repeat("à", 31)))
}

func TestConversation_Append(t *testing.T) {
	t0 := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	c := &Conversation{ID: "c", Title: DefaultTitle, CreatedAt: t0, UpdatedAt: t0}

	c.Append(&Message{ID: "1", Role: chat.RoleUser, Content: "Qual è la capitale dell'Australia?", Timestamp: t0.Add(time.Second)})
	c.Append(&Message{ID: "2", Role: chat.RoleAssistant, Content: "Canberra.", Timestamp: t0.Add(2 * time.Second)})
	c.Append(&Message{ID: "3", Role: chat.RoleUser, Content: "Grazie", Timestamp: t0.Add(3 * time.Second)})

	assert.Equal(t, "Qual è la capitale dell'Austra...", c.Title, "只有首条用户消息决定标题")
	assert.Equal(t, []string{"1", "2", "3"}, []string{c.Messages[0].ID, c.Messages[1].ID, c.Messages[2].ID})
	assert.Equal(t, t0.Add(3*time.Second), c.UpdatedAt)
	assert.Equal(t, 2, c.CycleCount())
	assert.Equal(t, []chat.Message{
		{Role: chat.RoleUser, Content: "Qual è la capitale dell'Australia?"},
		{Role: chat.RoleAssistant, Content: "Canberra."},
		{Role: chat.RoleUser, Content: "Grazie"},
	}, c.WireMessages())
}

func TestConversation_CloneIsIndependent(t *testing.T) {
	c := &Conversation{ID: "c"}
	c.Append(&Message{ID: "1", Role: chat.RoleUser, Content: "a"})

	clone := c.Clone()
	c.Append(&Message{ID: "2", Role: chat.RoleAssistant, Content: "b"})

	assert.Len(t, clone.Messages, 1)
	assert.Len(t, c.Messages, 2)
}
