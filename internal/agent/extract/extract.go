package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Chative-core-poc-v1/bookseller/internal/agent/lexicon"
	"github.com/Chative-core-poc-v1/bookseller/internal/agent/model"
)

// deliveryRules are checked in order; the first option with a cue wins.
var deliveryRules = []struct {
	option model.DeliveryOption
	re     *regexp.Regexp
}{
	{model.StorePickup, regexp.MustCompile(`(?i)\b(?:store\s*pickup|pick\s*(?:it\s+|them\s+)?-?\s*up|collect(?:ion|ing)?|come\s+and\s+get)\b`)},
	{model.HomeDelivery, regexp.MustCompile(`(?i)\b(?:home\s*delivery|deliver\s*(?:it\s*)?to\s*(?:my\s*)?home|home\s*address|ship\s*to\s*(?:my\s*)?home)\b`)},
	{model.ExpressDelivery, regexp.MustCompile(`(?i)\b(?:express|fast|urgent|quick\s*delivery|same\s*day)\b`)},
}

// Text joins every message of both roles with newlines, the blob the rules run on.
func Text(transcript []model.TranscriptEntry) string {
	msgs := make([]string, len(transcript))
	for i, e := range transcript {
		msgs[i] = lexicon.FoldQuotes(e.Message)
	}
	return strings.Join(msgs, "\n")
}

// Extract builds a draft order from the transcript. It never confirms and never
// fails; fields without a matching rule stay nil.
func Extract(transcript []model.TranscriptEntry) model.OrderDraft {
	text := Text(transcript)
	order := model.NewOrderDraft()

	order.CustomerName = optional(NameRules.First(text))
	order.CustomerContact = optional(ContactRules.First(text))
	order.BookTitle = optional(TitleRules.First(text))
	order.Author = optional(AuthorRules.First(text))
	order.Genre = optional(GenreRules.First(text))
	order.PaymentMethod = optional(PaymentRules.First(text))
	order.SpecialRequests = optional(SpecialRequestRules.First(text))

	if q, ok := QuantityRules.First(text); ok {
		if n, err := strconv.Atoi(q); err == nil {
			order.SetQuantity(n)
		}
	}

	order.DeliveryOption = Delivery(text)
	if order.DeliveryOption == model.HomeDelivery {
		order.DeliveryAddress = optional(AddressRules.First(text))
	}
	return order
}

// Delivery returns the first delivery option cued in text, home delivery by default.
func Delivery(text string) model.DeliveryOption {
	for _, r := range deliveryRules {
		if r.re.MatchString(text) {
			return r.option
		}
	}
	return model.HomeDelivery
}

func optional(v string, ok bool) *string {
	if !ok {
		return nil
	}
	return &v
}

// QuotedTitles returns every quoted string in text, double quotes first.
func QuotedTitles(text string) []string {
	text = lexicon.FoldQuotes(text)
	return append(doubleQuoted.All(text), singleQuoted.All(text)...)
}

// Authors returns every "by First Last" mention in text.
func Authors(text string) []string {
	return authorMention.All(text)
}
