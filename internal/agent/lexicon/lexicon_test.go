package lexicon

import (
	"reflect"
	"testing"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := Normalize("I Can’t Afford the Café Édition — sorry")
	want := "i can't afford the cafe edition - sorry"
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
}

func TestContainsPhraseWordBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text, phrase string
		want         bool
	}{
		{"i want to buy it", "buy", true},
		{"she's a buyer", "buy", false},
		{"that is too much money", "too much", true},
		{"is it a non-fiction book", "fiction", true},
		{"getting there", "get", false},
		{"get", "get", true},
		{"", "get", false},
		{"anything", "", false},
	}
	for _, tc := range cases {
		if got := ContainsPhrase(tc.text, tc.phrase); got != tc.want {
			t.Fatalf("ContainsPhrase(%q, %q) = %v, want %v", tc.text, tc.phrase, got, tc.want)
		}
	}
}

func TestMatchedPhrasesKeepsTableOrder(t *testing.T) {
	t.Parallel()

	got := MatchedPhrases("how much is it, is it available? i want it", PurchaseCues)
	want := []string{"want", "how much", "available"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MatchedPhrases = %v, want %v", got, want)
	}
}

func TestTopics(t *testing.T) {
	t.Parallel()

	got := TopicsIn("a mystery novel by a famous author", ConversationTopics)
	want := []string{"fiction", "mystery", "author"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopicsIn = %v, want %v", got, want)
	}

	if topic, ok := FirstTopic("which author is cheap", CurrentTopics); !ok || topic != "price" {
		t.Fatalf("FirstTopic = %q %v, want price", topic, ok)
	}
	if _, ok := FirstTopic("hello there", CurrentTopics); ok {
		t.Fatal("FirstTopic matched a neutral greeting")
	}
}

func TestConcernTypeOf(t *testing.T) {
	t.Parallel()

	cases := map[string]model.ConcernType{
		"budget":         model.ConcernPrice,
		"maybe":          model.ConcernUncertainty,
		"no time":        model.ConcernTiming,
		"not interested": model.ConcernNeed,
		"worried":        model.ConcernGeneral,
	}
	for kw, want := range cases {
		if got := ConcernTypeOf(kw); got != want {
			t.Fatalf("ConcernTypeOf(%q) = %v, want %v", kw, got, want)
		}
	}
}

func TestObjectionRulesPriority(t *testing.T) {
	t.Parallel()

	if ObjectionRules[0].Category != model.ObjectionPrice {
		t.Fatalf("first rule = %v, want price", ObjectionRules[0].Category)
	}
	if got := len(ObjectionRules); got != 5 {
		t.Fatalf("rules = %d, want 5", got)
	}
}
