package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTurnRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		messages []Message
		wantErr  bool
	}{
		{"nil messages", nil, true},
		{"empty messages", []Message{}, true},
		{"assistant only", []Message{{Role: RoleAssistant, Content: "ciao"}}, true},
		{"system role rejected", []Message{{Role: RoleSystem, Content: "x"}, {Role: RoleUser, Content: "y"}}, true},
		{"unknown role", []Message{{Role: "tool", Content: "x"}}, true},
		{"valid", []Message{{Role: RoleUser, Content: "ciao"}, {Role: RoleAssistant, Content: "ehi"}, {Role: RoleUser, Content: "come va"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&TurnRequest{Messages: tt.messages}).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTurnRequest_LatestUserIndex(t *testing.T) {
	req := &TurnRequest{Messages: []Message{
		{Role: RoleUser, Content: "a"},
		{Role: RoleAssistant, Content: "b"},
		{Role: RoleUser, Content: "c"},
		{Role: RoleAssistant, Content: "d"},
	}}
	assert.Equal(t, 2, req.LatestUserIndex())
	assert.Equal(t, -1, (&TurnRequest{}).LatestUserIndex())
	assert.Equal(t, 2, CycleCount(req.Messages))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "ciao", Truncate("ciao", 10))
	assert.Equal(t, "perché", Truncate("perché no", 6))
	assert.Equal(t, "", Truncate("x", 0))
}
