package sentiment

import (
	"context"
	"reflect"
	"testing"
)

func TestCompound(t *testing.T) {
	t.Parallel()

	great := Compound("This book is great")
	if great <= 0.5 {
		t.Fatalf("Compound(great) = %v, want > 0.5", great)
	}
	if got := Compound("This book is not great"); got >= 0 {
		t.Fatalf("negated compound = %v, want negative", got)
	}
	if got := Compound("This book is GREAT"); got <= great {
		t.Fatalf("shouted compound = %v, want > %v", got, great)
	}
	if got := Compound("This book is great!!"); got <= great {
		t.Fatalf("exclaimed compound = %v, want > %v", got, great)
	}
	if got := Compound("This book is really great"); got <= great {
		t.Fatalf("boosted compound = %v, want > %v", got, great)
	}
	if got := Compound("The delivery was not bad"); got <= 0 {
		t.Fatalf("Compound(not bad) = %v, want positive", got)
	}
	if got := Compound("I hate waiting for the delivery"); got >= 0 {
		t.Fatalf("Compound(hate) = %v, want negative", got)
	}
	if got := Compound("the book has pages"); got != 0 {
		t.Fatalf("Compound(no lexicon words) = %v, want 0", got)
	}
}

func TestValencePassConfidenceIsMagnitude(t *testing.T) {
	t.Parallel()

	p, err := NewValencePass(0.25).Analyze(context.Background(), "awful service")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !p.HasPolarity || p.Polarity >= 0 || !near(p.Confidence, -p.Polarity) {
		t.Fatalf("partial = %+v, want negative polarity with confidence = |polarity|", p)
	}
}

func TestOpinion(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text     string
		pol, sub float64
	}{
		{"a very good book", 0.91, 0.78},
		{"not good", -0.35, 0.6},
		{"hello there", 0, 0},
		{"good but boring", -0.15, 0.8},
	}
	for _, tc := range cases {
		pol, sub := Opinion(tc.text)
		if !near(pol, tc.pol) || !near(sub, tc.sub) {
			t.Fatalf("Opinion(%q) = %v/%v, want %v/%v", tc.text, pol, sub, tc.pol, tc.sub)
		}
	}
}

func TestPatternPassReportsSubjectivity(t *testing.T) {
	t.Parallel()

	p, _ := NewPatternPass(0.2).Analyze(context.Background(), "hello")
	if p.Subjectivity == nil || *p.Subjectivity != 0 {
		t.Fatalf("subjectivity = %v, want 0", p.Subjectivity)
	}
}

func TestSalesSignals(t *testing.T) {
	t.Parallel()

	m, cues := SalesSignals("That's too much, maybe later. Thank you though, you were helpful")
	if !near(m.ObjectionLevel, 2.0/9*3) {
		t.Fatalf("objection = %v, want %v", m.ObjectionLevel, 2.0/9*3)
	}
	if !near(m.TrustLevel, 2.0/9*2) {
		t.Fatalf("trust = %v, want %v", m.TrustLevel, 2.0/9*2)
	}
	if m.PurchaseIntent != 0 || m.Urgency != 0 {
		t.Fatalf("purchase/urgency = %v/%v, want 0", m.PurchaseIntent, m.Urgency)
	}
	want := []string{"too much", "maybe later", "thank you", "helpful"}
	if !reflect.DeepEqual(cues, want) {
		t.Fatalf("cues = %v, want %v", cues, want)
	}
	if m.Engagement != 0.64 {
		t.Fatalf("engagement = %v, want 0.64", m.Engagement)
	}
}
