package conversations

import (
	"context"
	"strings"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// DefaultContextWindow is how many recent turns feed the stage context update.
const DefaultContextWindow = 10

type MessagesManager struct {
	transcripts   model.TranscriptRepository
	contextWindow int
}

func NewMessagesManager(transcripts model.TranscriptRepository, config model.ConversationConfig) *MessagesManager {
	window := config.ContextWindow
	if window <= 0 {
		window = DefaultContextWindow
	}
	return &MessagesManager{
		transcripts:   transcripts,
		contextWindow: window,
	}
}

// Record appends the utterance to the room transcript. Blank messages are not
// recorded and report false.
func (cm *MessagesManager) Record(ctx context.Context, in model.TurnInput) (bool, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return false, nil
	}
	entry := model.TranscriptEntry{Role: in.Role, Message: message, Timestamp: in.Timestamp}
	if err := cm.transcripts.AppendEntry(ctx, in.RoomID, entry); err != nil {
		return false, err
	}
	return true, nil
}

// Recent returns the last turns of the room, oldest first.
func (cm *MessagesManager) Recent(ctx context.Context, roomID string) ([]model.TranscriptEntry, error) {
	entries, err := cm.transcripts.ListEntries(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return TrimTail(entries, cm.contextWindow), nil
}

// BuildTurnContext renders turns for a model prompt.
func BuildTurnContext(recent []model.TranscriptEntry) string {
	var b strings.Builder
	b.WriteString("<conversation_context>\n")
	for _, e := range recent {
		if e.Message == "" {
			continue
		}
		switch e.Role {
		case model.RoleUser:
			b.WriteString("CustomerMessage(" + e.Message + ")\n")
		case model.RoleAssistant:
			b.WriteString("AgentMessage(" + e.Message + ")\n")
		}
	}
	b.WriteString("</conversation_context>")
	return b.String()
}

// TrimTail returns a copy of the last maxTurns entries.
func TrimTail(entries []model.TranscriptEntry, maxTurns int) []model.TranscriptEntry {
	source := entries
	if maxTurns >= 0 && len(entries) > maxTurns {
		source = entries[len(entries)-maxTurns:]
	}
	result := make([]model.TranscriptEntry, len(source))
	copy(result, source)
	return result
}
