package extract

import (
	"reflect"
	"testing"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

func transcript(msgs ...string) []model.TranscriptEntry {
	out := make([]model.TranscriptEntry, len(msgs))
	for i, m := range msgs {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		out[i] = model.TranscriptEntry{Role: role, Message: m, Timestamp: float64(1700000000 + i)}
	}
	return out
}

func str(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestExtractBasicOrder(t *testing.T) {
	t.Parallel()

	got := Extract(transcript(
		"Hi, my name is Priya.",
		"Lovely to meet you! How many would you like?",
		"I'd like 2 copies",
		"Great. How would you like to pay?",
		"I'll pay by card",
	))

	if str(got.CustomerName) != "Priya" {
		t.Fatalf("name = %s, want Priya", str(got.CustomerName))
	}
	if got.Quantity == nil || *got.Quantity != 2 {
		t.Fatalf("quantity = %v, want 2", got.Quantity)
	}
	if str(got.PaymentMethod) != "card" {
		t.Fatalf("payment = %s, want card", str(got.PaymentMethod))
	}
	if got.DeliveryOption != model.HomeDelivery {
		t.Fatalf("delivery = %v, want home_delivery", got.DeliveryOption)
	}
	if got.Status != model.OrderDraftStatus {
		t.Fatalf("status = %v, want draft", got.Status)
	}
	if got.TotalAmount == nil || *got.TotalAmount != 31.98 {
		t.Fatalf("total = %v, want 31.98", got.TotalAmount)
	}
	if got.BookTitle != nil || got.Author != nil || got.OrderID != nil {
		t.Fatalf("unexpected fields: title=%s author=%s id=%s", str(got.BookTitle), str(got.Author), str(got.OrderID))
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()

	tr := transcript(
		`I'm looking for "The Silent Patient" by Alex Michaelides`,
		"Excellent choice. Pickup or delivery?",
		"I'll collect it from the store, and make sure it is gift wrapped",
	)
	a, b := Extract(tr), Extract(tr)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Extract not idempotent:\n%+v\n%+v", a, b)
	}
	if str(a.BookTitle) != "The Silent Patient" || str(a.Author) != "Alex Michaelides" {
		t.Fatalf("title/author = %s / %s", str(a.BookTitle), str(a.Author))
	}
	if a.DeliveryOption != model.StorePickup || a.DeliveryAddress != nil {
		t.Fatalf("delivery = %v address = %s", a.DeliveryOption, str(a.DeliveryAddress))
	}
	if str(a.SpecialRequests) != "it is gift wrapped" {
		t.Fatalf("special requests = %s", str(a.SpecialRequests))
	}
}

func TestExtractEmptyTranscript(t *testing.T) {
	t.Parallel()

	got := Extract(nil)
	want := model.NewOrderDraft()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract(nil) = %+v, want %+v", got, want)
	}
}

func TestAddressOnlyForHomeDelivery(t *testing.T) {
	t.Parallel()

	home := Extract(transcript("Please deliver to 42 Baker Street, London."))
	if str(home.DeliveryAddress) != "42 Baker Street, London" {
		t.Fatalf("address = %s", str(home.DeliveryAddress))
	}
	express := Extract(transcript("Same day shipping please, deliver to 42 Baker Street, London."))
	if express.DeliveryOption != model.ExpressDelivery || express.DeliveryAddress != nil {
		t.Fatalf("express delivery = %v address = %s", express.DeliveryOption, str(express.DeliveryAddress))
	}
}

func TestFieldRulesFirstMatchWins(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field string
		rules Rules
		text  string
		want  string
	}{
		{"name", NameRules, "customer name: Arjun Mehta\nthis is Someone Else", "Arjun Mehta"},
		{"name", NameRules, "Hello Meera, how can I help?", "Meera"},
		{"name", NameRules, "I am Rahul", "Rahul"},
		{"contact", ContactRules, "my phone number is 98765 43210", "98765 43210"},
		{"title", TitleRules, "the book is called Project Hail Mary by Andy Weir", "Project Hail Mary"},
		{"title", TitleRules, "I'd recommend 'Atomic Habits' for that", "Atomic Habits"},
		{"title", TitleRules, "I'm looking for 'Ender's Game'", "Ender's Game"},
		{"author", AuthorRules, "anything by the way by Agatha Christie", "Agatha Christie"},
		{"author", AuthorRules, "I loved Stephen King's novel", "Stephen King"},
		{"genre", GenreRules, "genre: Self-Help", "self-help"},
		{"genre", GenreRules, "I want a mystery novel", "mystery"},
		{"quantity", QuantityRules, "I want 3 copies of it", "3"},
		{"quantity", QuantityRules, "three books please", "3"},
		{"quantity", QuantityRules, "buy 4 books", "4"},
		{"quantity", QuantityRules, "5 units", "5"},
		{"quantity", QuantityRules, "3 books", "3"},
		{"name", NameRules, "Hello, Welcome to Springboard Books!\nHey Priya, here are the books", "Priya"},
		{"name", NameRules, "Hi Anika Thanks for waiting", "Anika"},
		{"payment", PaymentRules, "Payment method: Credit Card", "credit card"},
		{"payment", PaymentRules, "is upi fine?", "upi"},
		{"special", SpecialRequestRules, "note: leave it at the door", "leave it at the door"},
	}
	for _, tc := range cases {
		got, ok := tc.rules.First(tc.text)
		if !ok || got != tc.want {
			t.Fatalf("%s rules on %q = %q %v, want %q", tc.field, tc.text, got, ok, tc.want)
		}
	}
}

func TestFieldRulesRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field string
		rules Rules
		text  string
	}{
		{"name", NameRules, "hi there, i am looking for a book"},
		{"contact", ContactRules, "contact: 12-34"},
		{"quantity", QuantityRules, "0 copies"},
		{"author", AuthorRules, "pay by card"},
		{"title", TitleRules, "I'd like it, I'll take it"},
	}
	for _, tc := range cases {
		if got, ok := tc.rules.First(tc.text); ok {
			t.Fatalf("%s rules on %q = %q, want no match", tc.field, tc.text, got)
		}
	}
}

func TestGreetingWordsAreNotNames(t *testing.T) {
	t.Parallel()

	for _, msgs := range [][]string{
		{"Hello, Welcome to Springboard Books! How can I help?"},
		{"Hi, I'd like some help?"},
		{"Good morning, Thanks for calling."},
		{"Hey, It's about an order", "Hello, This is the right desk"},
	} {
		if got := Extract(transcript(msgs...)); got.CustomerName != nil {
			t.Fatalf("Extract(%q) name got %q want <nil>", msgs, *got.CustomerName)
		}
	}
}

func TestDelivery(t *testing.T) {
	t.Parallel()

	cases := map[string]model.DeliveryOption{
		"can I pick it up tomorrow":         model.StorePickup,
		"home delivery please, it's urgent": model.HomeDelivery,
		"express shipping":                  model.ExpressDelivery,
		"I had breakfast":                   model.HomeDelivery,
	}
	for text, want := range cases {
		if got := Delivery(text); got != want {
			t.Fatalf("Delivery(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestMentions(t *testing.T) {
	t.Parallel()

	text := `Have you read “The Midnight Library” by Matt Haig? Or 'Dune' by Frank Herbert. I can send it by Friday.`

	titles := QuotedTitles(text)
	if want := []string{"The Midnight Library", "Dune"}; !reflect.DeepEqual(titles, want) {
		t.Fatalf("QuotedTitles got %q want %q", titles, want)
	}
	titles = QuotedTitles("I loved 'Ender's Game' and 'Dune'")
	if want := []string{"Ender's Game", "Dune"}; !reflect.DeepEqual(titles, want) {
		t.Fatalf("QuotedTitles with apostrophe got %q want %q", titles, want)
	}
	authors := Authors(text)
	if want := []string{"Matt Haig", "Frank Herbert"}; !reflect.DeepEqual(authors, want) {
		t.Fatalf("Authors got %q want %q", authors, want)
	}
}
