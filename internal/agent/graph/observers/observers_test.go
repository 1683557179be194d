package observers

import (
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"
)

func TestLastUserContent(t *testing.T) {
	t.Parallel()

	msgs := []*schema.Message{
		schema.SystemMessage("sys"),
		schema.UserMessage("  first  "),
		nil,
		schema.AssistantMessage("reply", nil),
	}
	if got := lastUserContent(msgs); got != "first" {
		t.Fatalf("lastUserContent got %q want first", got)
	}
	if got := lastUserContent(nil); got != "" {
		t.Fatalf("lastUserContent(nil) got %q", got)
	}
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", maxLoggedContent+10)
	got := snippet(long)
	if len(got) != maxLoggedContent+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("snippet len got %d", len(got))
	}
	if got := snippet(" short "); got != "short" {
		t.Fatalf("snippet got %q", got)
	}
}

func TestNewAllCallbacks(t *testing.T) {
	t.Parallel()

	if NewAllCallbacks() == nil {
		t.Fatalf("NewAllCallbacks got nil")
	}
}
