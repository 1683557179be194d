package conversations

import (
	"context"
	"fmt"
	"testing"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/repo"
)

func TestRecordSkipsBlankAndRecentTrims(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mm := NewMessagesManager(repo.NewMemoryRepository(), model.ConversationConfig{ContextWindow: 3})

	recorded, err := mm.Record(ctx, model.TurnInput{RoomID: "room-1", Role: model.RoleUser, Message: "   "})
	if err != nil || recorded {
		t.Fatalf("blank message recorded=%v err=%v", recorded, err)
	}
	for i := 1; i <= 5; i++ {
		in := model.TurnInput{RoomID: "room-1", Role: model.RoleUser, Message: fmt.Sprintf(" turn %d ", i), Timestamp: float64(i)}
		if ok, err := mm.Record(ctx, in); err != nil || !ok {
			t.Fatalf("Record %d: ok=%v err=%v", i, ok, err)
		}
	}

	recent, err := mm.Recent(ctx, "room-1")
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 3 || recent[0].Message != "turn 3" || recent[2].Message != "turn 5" {
		t.Fatalf("recent got %+v", recent)
	}
}

func TestBuildTurnContext(t *testing.T) {
	t.Parallel()

	got := BuildTurnContext([]model.TranscriptEntry{
		{Role: model.RoleAssistant, Message: "Hello, how can I help?"},
		{Role: model.RoleUser, Message: ""},
		{Role: model.RoleUser, Message: "Looking for a thriller"},
	})
	want := "<conversation_context>\nAgentMessage(Hello, how can I help?)\nCustomerMessage(Looking for a thriller)\n</conversation_context>"
	if got != want {
		t.Fatalf("BuildTurnContext got %q want %q", got, want)
	}
}

func TestTrimTailCopies(t *testing.T) {
	t.Parallel()

	entries := []model.TranscriptEntry{{Message: "a"}, {Message: "b"}}
	got := TrimTail(entries, 5)
	got[0].Message = "changed"
	if entries[0].Message != "a" || len(got) != 2 {
		t.Fatalf("TrimTail did not copy: %+v", entries)
	}
}
